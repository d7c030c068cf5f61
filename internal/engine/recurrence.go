package engine

import "slices"

// WeeklyRepeatPolicy decides what the weekly branch does when its source is
// seven or more days old and the engine runs again on the same day.
type WeeklyRepeatPolicy string

const (
	// WeeklyRepeatEveryRun re-evaluates the never-advanced source on every
	// run, so each run spawns another clone until a new source exists.
	WeeklyRepeatEveryRun WeeklyRepeatPolicy = "every-run"
	// WeeklyRepeatOncePerDay skips the spawn when the series already has a
	// member dated today.
	WeeklyRepeatOncePerDay WeeklyRepeatPolicy = "once-per-day"
)

// Recurrence runs the load-time passes for one calendar day.
type Recurrence struct {
	Today  Day
	NextID func() ID
	Policy WeeklyRepeatPolicy
}

// RunReport counts what each pass produced.
type RunReport struct {
	Materialized     int // weekly todos turned into daily todos
	TodoClones       int // repeating todos cloned onto today
	WeeklyClones     int // repeating weekly todos cloned onto today
	LateMaterialized int // weekly clones that were due today and materialized
}

func (r RunReport) Changed() bool {
	return r.Materialized+r.TodoClones+r.WeeklyClones+r.LateMaterialized > 0
}

// Run materializes due weekly todos, regenerates repeating todos, regenerates
// repeating weekly todos and then materializes again. Weekly clones are always
// due today, so the second materialization puts them on today's list now
// instead of on the next run.
// The input slices are not modified.
func (rc Recurrence) Run(todos []Todo, weekly []WeeklyTodo) ([]Todo, []WeeklyTodo, RunReport) {
	var rep RunReport
	todos, weekly, rep.Materialized = rc.MaterializeDue(todos, weekly)
	todos, rep.TodoClones = rc.RegenerateTodos(todos)
	weekly, rep.WeeklyClones = rc.RegenerateWeeklyTodos(weekly)
	if rep.WeeklyClones > 0 {
		todos, weekly, rep.LateMaterialized = rc.MaterializeDue(todos, weekly)
	}
	return todos, weekly, rep
}

// MaterializeDue turns every weekly todo due today and not yet completed into
// a daily todo and marks the weekly todo completed.
func (rc Recurrence) MaterializeDue(todos []Todo, weekly []WeeklyTodo) ([]Todo, []WeeklyTodo, int) {
	today := rc.Today.String()
	todos = slices.Clone(todos)
	weekly = slices.Clone(weekly)

	n := 0
	for i := range weekly {
		w := &weekly[i]
		if w.Completed || w.DueDate != today {
			continue
		}
		todos = append(todos, Todo{
			ID:         rc.NextID(),
			Text:       w.Text,
			Date:       today,
			Repeat:     RepeatNone,
			CustomDays: []int{},
		})
		w.Completed = true
		n++
	}
	return todos, weekly, n
}

// RegenerateTodos clones repeating todos onto today. Spawn decisions are made
// against the list as it was before the scan, and clones are appended after it.
func (rc Recurrence) RegenerateTodos(todos []Todo) ([]Todo, int) {
	today := rc.Today.String()
	taken := map[ID]bool{}
	for _, t := range todos {
		if t.Date == today {
			taken[seriesOf(t.ID, t.Series)] = true
		}
	}

	var spawns []Todo
	for _, t := range todos {
		series := seriesOf(t.ID, t.Series)
		if !rc.shouldSpawn(t.Repeat, t.Date, t.CustomDays, true, taken[series]) {
			continue
		}
		clone := t
		clone.ID = rc.NextID()
		clone.Completed = false
		clone.Date = today
		clone.Series = series
		clone.CustomDays = slices.Clone(normalizeDays(t.CustomDays))
		spawns = append(spawns, clone)
		taken[series] = true
	}

	out := make([]Todo, 0, len(todos)+len(spawns))
	out = append(out, todos...)
	out = append(out, spawns...)
	return out, len(spawns)
}

// RegenerateWeeklyTodos is RegenerateTodos over weekly todos, keyed on the
// due date. Only weekly and custom repetition apply.
func (rc Recurrence) RegenerateWeeklyTodos(weekly []WeeklyTodo) ([]WeeklyTodo, int) {
	today := rc.Today.String()
	taken := map[ID]bool{}
	for _, w := range weekly {
		if w.DueDate == today {
			taken[seriesOf(w.ID, w.Series)] = true
		}
	}

	var spawns []WeeklyTodo
	for _, w := range weekly {
		series := seriesOf(w.ID, w.Series)
		if !rc.shouldSpawn(w.Repeat, w.DueDate, w.CustomDays, false, taken[series]) {
			continue
		}
		clone := w
		clone.ID = rc.NextID()
		clone.Completed = false
		clone.DueDate = today
		clone.Series = series
		clone.CustomDays = slices.Clone(normalizeDays(w.CustomDays))
		spawns = append(spawns, clone)
		taken[series] = true
	}

	out := make([]WeeklyTodo, 0, len(weekly)+len(spawns))
	out = append(out, weekly...)
	out = append(out, spawns...)
	return out, len(spawns)
}

// shouldSpawn holds the repeat rules shared by both regenerations. takenToday
// is true when the series already has a member dated today.
func (rc Recurrence) shouldSpawn(r Repeat, date string, customDays []int, allowDaily, takenToday bool) bool {
	today := rc.Today.String()
	switch r {
	case RepeatDaily:
		return allowDaily && date != today && !takenToday
	case RepeatWeekly:
		d, err := ParseDay(date)
		if err != nil {
			return false
		}
		if rc.Today.DaysSince(d) < 7 {
			return false
		}
		if rc.Policy == WeeklyRepeatOncePerDay && takenToday {
			return false
		}
		return true
	case RepeatCustom:
		return date != today && !takenToday && slices.Contains(customDays, int(rc.Today.Weekday()))
	default:
		return false
	}
}
