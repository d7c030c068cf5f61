package engine

import (
	"context"
	"slices"
)

// The Edit methods return false with a nil error when no record has the id.

func (s *Service) EditHabit(ctx context.Context, id ID, in HabitInput) (bool, error) {
	i := slices.IndexFunc(s.habits, func(h Habit) bool { return h.ID == id })
	if i < 0 {
		return false, nil
	}
	name, color, err := validateHabit(in)
	if err != nil {
		return false, err
	}
	habits := slices.Clone(s.habits)
	habits[i].Name, habits[i].Color = name, color
	if err := s.putJSON(ctx, s.kv, habitsKey(s.year, s.quarter), habits); err != nil {
		return false, err
	}
	s.habits = habits
	return true, nil
}

// EditTodo keeps the todo's date and completion. Changing the repetition
// drops the earlier-dated members of the series, leaving the edited todo as
// its only source.
func (s *Service) EditTodo(ctx context.Context, id ID, in TodoInput) (bool, error) {
	i := slices.IndexFunc(s.todos, func(t Todo) bool { return t.ID == id })
	if i < 0 {
		return false, nil
	}
	text, repeat, days, err := validateRepeating(in.Text, in.Repeat, in.CustomDays, true)
	if err != nil {
		return false, err
	}
	cur := s.todos[i]
	todos := slices.Clone(s.todos)
	todos[i].Text, todos[i].Repeat, todos[i].CustomDays = text, repeat, days
	if cur.Repeat != repeat || !slices.Equal(cur.CustomDays, days) {
		todos = withoutEarlierMembers(todos, seriesOf(cur.ID, cur.Series), id, s.today.String())
	}
	if err := s.putJSON(ctx, s.kv, todosKey(s.today), todos); err != nil {
		return false, err
	}
	s.todos = todos
	return true, nil
}

// EditWeeklyTodo rewrites a weekly todo and materializes it again, so moving
// the due date to today puts it on today's list.
func (s *Service) EditWeeklyTodo(ctx context.Context, id ID, in WeeklyTodoInput) (bool, error) {
	i := slices.IndexFunc(s.weeklyTodos, func(w WeeklyTodo) bool { return w.ID == id })
	if i < 0 {
		return false, nil
	}
	text, repeat, days, err := validateRepeating(in.Text, in.Repeat, in.CustomDays, false)
	if err != nil {
		return false, err
	}
	due, err := validateDueDate(in.DueDate)
	if err != nil {
		return false, err
	}
	weekly := slices.Clone(s.weeklyTodos)
	w := &weekly[i]
	w.Text, w.DueDate, w.Repeat, w.CustomDays = text, due, repeat, days
	if err := s.saveWeekly(ctx, weekly); err != nil {
		return false, err
	}
	return true, nil
}

// EditGoal stamps the goal with today's date.
func (s *Service) EditGoal(ctx context.Context, id ID, in GoalInput) (bool, error) {
	i := slices.IndexFunc(s.goals, func(g Goal) bool { return g.ID == id })
	if i < 0 {
		return false, nil
	}
	text, system, err := validateGoal(in)
	if err != nil {
		return false, err
	}
	goals := slices.Clone(s.goals)
	goals[i].Text, goals[i].System, goals[i].Date = text, system, s.today.String()
	if err := s.putJSON(ctx, s.kv, goalsKey(s.year, s.quarter), goals); err != nil {
		return false, err
	}
	s.goals = goals
	return true, nil
}

// EditJournal replaces the four answers and restamps the date.
func (s *Service) EditJournal(ctx context.Context, id ID, in JournalInput) (bool, error) {
	i := slices.IndexFunc(s.journals, func(j Journal) bool { return j.ID == id })
	if i < 0 {
		return false, nil
	}
	j, err := validateJournal(in)
	if err != nil {
		return false, err
	}
	j.ID = id
	j.Date = s.today.String()

	journals := slices.Clone(s.journals)
	journals[i] = j
	if err := s.putJSON(ctx, s.kv, journalsKey, journals); err != nil {
		return false, err
	}
	s.journals = journals
	return true, nil
}
