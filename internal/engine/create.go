package engine

import (
	"context"
	"slices"

	"github.com/Brooklss/Quarterly-Life-OS/internal/storage"
)

type HabitInput struct {
	Name  string
	Color string
}

type TodoInput struct {
	Text       string
	Repeat     Repeat
	CustomDays []int
}

type WeeklyTodoInput struct {
	Text       string
	DueDate    string
	Repeat     Repeat
	CustomDays []int
}

type GoalInput struct {
	Text   string
	System string
}

type JournalInput struct {
	WorkedWell      string
	DidntWork       string
	NeedsAdjustment string
	Feel            string
}

func (s *Service) AddHabit(ctx context.Context, in HabitInput) (*Habit, error) {
	name, color, err := validateHabit(in)
	if err != nil {
		return nil, err
	}
	h := Habit{
		ID:      s.ids.Next(),
		Name:    name,
		Color:   color,
		Quarter: s.quarter,
		Year:    s.year,
	}
	habits := append(slices.Clone(s.habits), h)
	if err := s.putJSON(ctx, s.kv, habitsKey(s.year, s.quarter), habits); err != nil {
		return nil, err
	}
	s.habits = habits
	return &h, nil
}

func (s *Service) AddTodo(ctx context.Context, in TodoInput) (*Todo, error) {
	text, repeat, days, err := validateRepeating(in.Text, in.Repeat, in.CustomDays, true)
	if err != nil {
		return nil, err
	}
	t := Todo{
		ID:         s.ids.Next(),
		Text:       text,
		Date:       s.today.String(),
		Repeat:     repeat,
		CustomDays: days,
	}
	todos := append(slices.Clone(s.todos), t)
	if err := s.putJSON(ctx, s.kv, todosKey(s.today), todos); err != nil {
		return nil, err
	}
	s.todos = todos
	return &t, nil
}

// AddWeeklyTodo saves a weekly todo and then materializes anything due
// today, so a todo added with today's due date shows up in the daily list
// immediately.
func (s *Service) AddWeeklyTodo(ctx context.Context, in WeeklyTodoInput) (*WeeklyTodo, error) {
	text, repeat, days, err := validateRepeating(in.Text, in.Repeat, in.CustomDays, false)
	if err != nil {
		return nil, err
	}
	due, err := validateDueDate(in.DueDate)
	if err != nil {
		return nil, err
	}
	w := WeeklyTodo{
		ID:         s.ids.Next(),
		Text:       text,
		DueDate:    due,
		Repeat:     repeat,
		CustomDays: days,
	}
	weekly := append(slices.Clone(s.weeklyTodos), w)
	if err := s.saveWeekly(ctx, weekly); err != nil {
		return nil, err
	}
	for _, got := range s.weeklyTodos {
		if got.ID == w.ID {
			return &got, nil
		}
	}
	return &w, nil
}

func (s *Service) AddGoal(ctx context.Context, in GoalInput) (*Goal, error) {
	text, system, err := validateGoal(in)
	if err != nil {
		return nil, err
	}
	g := Goal{
		ID:      s.ids.Next(),
		Text:    text,
		System:  system,
		Quarter: s.quarter,
		Year:    s.year,
	}
	goals := append(slices.Clone(s.goals), g)
	if err := s.putJSON(ctx, s.kv, goalsKey(s.year, s.quarter), goals); err != nil {
		return nil, err
	}
	s.goals = goals
	return &g, nil
}

// AddJournal appends a journal and moves the navigator onto it.
func (s *Service) AddJournal(ctx context.Context, in JournalInput) (*Journal, error) {
	j, err := validateJournal(in)
	if err != nil {
		return nil, err
	}
	j.ID = s.ids.Next()
	j.Date = s.today.String()

	journals := append(slices.Clone(s.journals), j)
	if err := s.putJSON(ctx, s.kv, journalsKey, journals); err != nil {
		return nil, err
	}
	s.journals = journals
	s.journal.Last(len(s.journals))
	return &j, nil
}

// saveWeekly writes a new weekly list after materializing whatever in it is
// due today. Both lists land in one transaction.
func (s *Service) saveWeekly(ctx context.Context, weekly []WeeklyTodo) error {
	todos, weekly, n := s.recurrence().MaterializeDue(s.todos, weekly)
	err := s.kv.Batch(ctx, func(kv *storage.KVRepo) error {
		if n > 0 {
			if err := s.putJSON(ctx, kv, todosKey(s.today), todos); err != nil {
				return err
			}
		}
		return s.putJSON(ctx, kv, weeklyTodosKey, weekly)
	})
	if err != nil {
		return err
	}
	s.todos, s.weeklyTodos = todos, weekly
	if n > 0 {
		s.logger.Debug("weekly todos materialized", "today", s.today.String(), "count", n)
	}
	return nil
}

func validateHabit(in HabitInput) (string, string, error) {
	name, err := normalizeText("name", in.Name)
	if err != nil {
		return "", "", err
	}
	color, err := normalizeColor(in.Color)
	if err != nil {
		return "", "", err
	}
	return name, color, nil
}

// validateRepeating checks the fields todos and weekly todos share. Custom
// days are kept only for the custom repeat mode.
func validateRepeating(text string, repeat Repeat, days []int, allowDaily bool) (string, Repeat, []int, error) {
	t, err := normalizeText("text", text)
	if err != nil {
		return "", "", nil, err
	}
	if repeat == "" {
		repeat = RepeatNone
	}
	if !repeat.IsValid() || (!allowDaily && !repeat.ValidForWeekly()) {
		return "", "", nil, ValidationError{Field: "repeat", Reason: "unsupported repeat " + string(repeat)}
	}
	if !validWeekdays(days) {
		return "", "", nil, ValidationError{Field: "customDays", Reason: "weekdays are 0 (Sunday) to 6"}
	}
	out := []int{}
	if repeat == RepeatCustom {
		if len(days) == 0 {
			return "", "", nil, ValidationError{Field: "customDays", Reason: "custom repeat needs at least one weekday"}
		}
		out = slices.Clone(days)
		slices.Sort(out)
		out = slices.Compact(out)
	}
	return t, repeat, out, nil
}

func validateDueDate(input string) (string, error) {
	d, err := ParseDay(input)
	if err != nil {
		return "", ValidationError{Field: "dueDate", Reason: err.Error()}
	}
	return d.String(), nil
}

func validateGoal(in GoalInput) (string, string, error) {
	text, err := normalizeText("text", in.Text)
	if err != nil {
		return "", "", err
	}
	system, err := normalizeText("system", in.System)
	if err != nil {
		return "", "", err
	}
	return text, system, nil
}

func validateJournal(in JournalInput) (Journal, error) {
	var (
		j   Journal
		err error
	)
	if j.WorkedWell, err = normalizeText("workedWell", in.WorkedWell); err != nil {
		return Journal{}, err
	}
	if j.DidntWork, err = normalizeText("didntWork", in.DidntWork); err != nil {
		return Journal{}, err
	}
	if j.NeedsAdjustment, err = normalizeText("needsAdjustment", in.NeedsAdjustment); err != nil {
		return Journal{}, err
	}
	if j.Feel, err = normalizeText("feel", in.Feel); err != nil {
		return Journal{}, err
	}
	return j, nil
}
