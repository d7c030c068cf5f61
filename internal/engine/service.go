package engine

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/Brooklss/Quarterly-Life-OS/internal/logging"
	"github.com/Brooklss/Quarterly-Life-OS/internal/storage"
)

type Options struct {
	StreakMode   StreakMode
	WeeklyRepeat WeeklyRepeatPolicy
	Logger       *log.Logger
	// Now defaults to time.Now. Tests pin it.
	Now func() time.Time
}

// ConfirmFunc is asked before anything is deleted. A nil ConfirmFunc means
// the caller already confirmed.
type ConfirmFunc func(message string) bool

// Service owns the whole tracker state for the selected year/quarter and the
// current day. It is not safe for concurrent use; one caller drives it.
type Service struct {
	db     *sql.DB
	kv     *storage.KVRepo
	logger *log.Logger
	now    func() time.Time
	ids    *IDGenerator

	streakMode StreakMode
	policy     WeeklyRepeatPolicy

	year    int
	quarter int
	today   Day

	habits      []Habit
	cells       HabitCells
	goals       []Goal
	todos       []Todo
	weeklyTodos []WeeklyTodo
	journals    []Journal
	journal     JournalNavigator
	darkMode    bool
}

func NewService(db *sql.DB, opts Options) *Service {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	mode := opts.StreakMode
	if mode == "" {
		mode = StreakCounter
	}
	policy := opts.WeeklyRepeat
	if policy == "" {
		policy = WeeklyRepeatEveryRun
	}

	today := DayOf(now())
	return &Service{
		db:          db,
		kv:          storage.NewKVRepo(db),
		logger:      logger,
		now:         now,
		ids:         NewIDGenerator(now),
		streakMode:  mode,
		policy:      policy,
		year:        today.Year(),
		quarter:     today.Quarter(),
		today:       today,
		cells:       HabitCells{},
		habits:      []Habit{},
		goals:       []Goal{},
		todos:       []Todo{},
		weeklyTodos: []WeeklyTodo{},
		journals:    []Journal{},
	}
}

func (s *Service) KVRepo() *storage.KVRepo { return s.kv }
func (s *Service) Year() int               { return s.year }
func (s *Service) Quarter() int            { return s.quarter }
func (s *Service) Today() Day              { return s.today }
func (s *Service) DarkMode() bool          { return s.darkMode }
func (s *Service) StreakMode() StreakMode  { return s.streakMode }

func (s *Service) Habits() []Habit           { return slices.Clone(s.habits) }
func (s *Service) Goals() []Goal             { return slices.Clone(s.goals) }
func (s *Service) Todos() []Todo             { return slices.Clone(s.todos) }
func (s *Service) WeeklyTodos() []WeeklyTodo { return slices.Clone(s.weeklyTodos) }
func (s *Service) Journals() []Journal       { return slices.Clone(s.journals) }

func (s *Service) Cells() HabitCells {
	out := make(HabitCells, len(s.cells))
	for k, v := range s.cells {
		out[k] = v
	}
	return out
}

// Load reads every collection for the selected quarter and the current day,
// runs the recurrence passes and persists what they changed. The service is
// only updated once every read and write has succeeded.
func (s *Service) Load(ctx context.Context) (RunReport, error) {
	today := DayOf(s.now())

	q, err := s.readQuarter(ctx, s.year, s.quarter)
	if err != nil {
		return RunReport{}, err
	}
	weekly, _, err := loadList[WeeklyTodo](ctx, s, weeklyTodosKey)
	if err != nil {
		return RunReport{}, err
	}
	journals, _, err := loadList[Journal](ctx, s, journalsKey)
	if err != nil {
		return RunReport{}, err
	}
	dark, _, err := s.kv.Get(ctx, darkModeKey)
	if err != nil {
		return RunReport{}, err
	}
	todos, carried, err := s.readTodos(ctx, today)
	if err != nil {
		return RunReport{}, err
	}

	todos = normalizeTodos(todos)
	weekly = normalizeWeeklyTodos(weekly)
	s.observeIDs(q.habits, q.goals, todos, weekly, journals)

	reconciled := s.streakMode == StreakDerived && ReconcileStreaks(q.habits, q.cells) > 0
	rc := Recurrence{Today: today, NextID: s.ids.Next, Policy: s.policy}
	todos, weekly, rep := rc.Run(todos, weekly)

	if reconciled || rep.Changed() || carried > 0 {
		err := s.kv.Batch(ctx, func(kv *storage.KVRepo) error {
			if reconciled {
				if err := s.putJSON(ctx, kv, habitsKey(s.year, s.quarter), q.habits); err != nil {
					return err
				}
			}
			if !rep.Changed() && carried == 0 {
				return nil
			}
			if err := s.putJSON(ctx, kv, todosKey(today), todos); err != nil {
				return err
			}
			return s.putJSON(ctx, kv, weeklyTodosKey, weekly)
		})
		if err != nil {
			return rep, err
		}
	}

	s.today = today
	s.habits, s.goals, s.cells = q.habits, q.goals, q.cells
	s.todos, s.weeklyTodos = todos, weekly
	s.journals = journals
	s.darkMode = dark == "true"
	s.journal.Clamp(len(s.journals))

	s.logger.Debug("recurrence run",
		"today", s.today.String(),
		"carried", carried,
		"materialized", rep.Materialized+rep.LateMaterialized,
		"todo_clones", rep.TodoClones,
		"weekly_clones", rep.WeeklyClones)
	return rep, nil
}

func (s *Service) recurrence() Recurrence {
	return Recurrence{Today: s.today, NextID: s.ids.Next, Policy: s.policy}
}

type quarterData struct {
	habits []Habit
	goals  []Goal
	cells  HabitCells
}

func (s *Service) readQuarter(ctx context.Context, year, quarter int) (quarterData, error) {
	habits, _, err := loadList[Habit](ctx, s, habitsKey(year, quarter))
	if err != nil {
		return quarterData{}, err
	}
	goals, _, err := loadList[Goal](ctx, s, goalsKey(year, quarter))
	if err != nil {
		return quarterData{}, err
	}
	cells := HabitCells{}
	key := habitCellsKey(year, quarter)
	raw, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		return quarterData{}, err
	}
	if ok {
		if err := json.Unmarshal([]byte(raw), &cells); err != nil {
			s.logger.Warn("discarding unreadable value", "key", key, "err", err)
			cells = HabitCells{}
		}
		if cells == nil {
			cells = HabitCells{}
		}
	}
	return quarterData{habits: habits, goals: goals, cells: cells}, nil
}

// readTodos reads the todo slice of today. On the first load of a day the
// slice does not exist yet; every recurring series of the most recent earlier
// slice is carried over as a recurrence source.
func (s *Service) readTodos(ctx context.Context, today Day) ([]Todo, int, error) {
	todos, ok, err := loadList[Todo](ctx, s, todosKey(today))
	if err != nil || ok {
		return todos, 0, err
	}

	prevKey, raw, found, err := s.kv.LatestBefore(ctx, todosKeyPrefix, todosKey(today))
	if err != nil {
		return nil, 0, err
	}
	if !found {
		return []Todo{}, 0, nil
	}
	prev, err := decodeList[Todo](raw)
	if err != nil {
		s.logger.Warn("discarding unreadable value", "key", prevKey, "err", err)
		return []Todo{}, 0, nil
	}
	carried := latestPerSeries(normalizeTodos(prev))
	if len(carried) > 0 {
		s.logger.Info("carrying recurring todos into a new day", "from", prevKey, "count", len(carried))
	}
	return carried, len(carried), nil
}

// latestPerSeries picks the member with the latest date of every series and
// keeps it when it still repeats. A series whose latest member was set to
// repeat none has ended and is left behind with the day's other one-offs.
func latestPerSeries(todos []Todo) []Todo {
	best := map[ID]int{}
	var order []ID
	for i, t := range todos {
		series := seriesOf(t.ID, t.Series)
		j, seen := best[series]
		if !seen {
			order = append(order, series)
			best[series] = i
			continue
		}
		if todos[j].Date <= t.Date {
			best[series] = i
		}
	}
	out := make([]Todo, 0, len(order))
	for _, series := range order {
		if t := todos[best[series]]; t.Repeat != RepeatNone {
			out = append(out, t)
		}
	}
	return out
}

// withoutEarlierMembers drops every member of series dated before today
// except keep. Those are carried-over recurrence sources the day view hides.
func withoutEarlierMembers(todos []Todo, series, keep ID, today string) []Todo {
	return slices.DeleteFunc(todos, func(t Todo) bool {
		return t.ID != keep && t.Date < today && seriesOf(t.ID, t.Series) == series
	})
}

func (s *Service) observeIDs(habits []Habit, goals []Goal, todos []Todo, weekly []WeeklyTodo, journals []Journal) {
	for _, h := range habits {
		s.ids.Observe(h.ID)
	}
	for _, g := range goals {
		s.ids.Observe(g.ID)
	}
	for _, t := range todos {
		s.ids.Observe(t.ID)
	}
	for _, w := range weekly {
		s.ids.Observe(w.ID)
	}
	for _, j := range journals {
		s.ids.Observe(j.ID)
	}
}

func loadList[T any](ctx context.Context, s *Service, key string) ([]T, bool, error) {
	raw, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return []T{}, false, nil
	}
	out, err := decodeList[T](raw)
	if err != nil {
		s.logger.Warn("discarding unreadable value", "key", key, "err", err)
		return []T{}, true, nil
	}
	return out, true, nil
}

func (s *Service) putJSON(ctx context.Context, kv *storage.KVRepo, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return kv.Set(ctx, key, string(data))
}

// persistHabitsAndCells writes the quarter's habits and cells. A quarter left
// with neither loses both keys so it drops out of StoredQuarters.
func (s *Service) persistHabitsAndCells(ctx context.Context) error {
	return s.kv.Batch(ctx, func(kv *storage.KVRepo) error {
		if len(s.habits) == 0 && len(s.cells) == 0 {
			if err := kv.Delete(ctx, habitsKey(s.year, s.quarter)); err != nil {
				return err
			}
			return kv.Delete(ctx, habitCellsKey(s.year, s.quarter))
		}
		if err := s.putJSON(ctx, kv, habitsKey(s.year, s.quarter), s.habits); err != nil {
			return err
		}
		return s.putJSON(ctx, kv, habitCellsKey(s.year, s.quarter), s.cells)
	})
}

func (s *Service) confirmed(confirm ConfirmFunc, message string) bool {
	return confirm == nil || confirm(message)
}
