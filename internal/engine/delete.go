package engine

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/Brooklss/Quarterly-Life-OS/internal/storage"
)

// Every Delete method returns false with a nil error when the id is unknown
// or confirm declines.

// DeleteHabit removes the habit and every cell it owns.
func (s *Service) DeleteHabit(ctx context.Context, id ID, confirm ConfirmFunc) (bool, error) {
	h, ok := s.HabitByID(id)
	if !ok {
		return false, nil
	}
	if !s.confirmed(confirm, fmt.Sprintf("Delete habit %q and all of its check marks?", h.Name)) {
		return false, nil
	}

	habits := slices.DeleteFunc(slices.Clone(s.habits), func(x Habit) bool { return x.ID == id })
	cells := maps.Clone(s.cells)
	if cells == nil {
		cells = HabitCells{}
	}
	purged := PurgeHabitCells(cells, id)

	prevHabits, prevCells := s.habits, s.cells
	s.habits, s.cells = habits, cells
	if err := s.persistHabitsAndCells(ctx); err != nil {
		s.habits, s.cells = prevHabits, prevCells
		return false, err
	}
	s.logger.Info("habit deleted", "id", id, "name", h.Name, "cells", purged)
	return true, nil
}

// DeleteTodo removes the todo and every weekly todo with the same text. The
// earlier-dated members of its series go too, so a deleted repeating todo
// does not come back on the next load.
func (s *Service) DeleteTodo(ctx context.Context, id ID, confirm ConfirmFunc) (bool, error) {
	i := slices.IndexFunc(s.todos, func(t Todo) bool { return t.ID == id })
	if i < 0 {
		return false, nil
	}
	text := s.todos[i].Text
	series := seriesOf(s.todos[i].ID, s.todos[i].Series)
	if !s.confirmed(confirm, fmt.Sprintf("Delete todo %q?", text)) {
		return false, nil
	}

	todos := slices.DeleteFunc(slices.Clone(s.todos), func(t Todo) bool { return t.ID == id })
	todos = withoutEarlierMembers(todos, series, id, s.today.String())
	weekly := slices.DeleteFunc(slices.Clone(s.weeklyTodos), func(w WeeklyTodo) bool { return w.Text == text })
	cascaded := len(s.weeklyTodos) - len(weekly)

	err := s.kv.Batch(ctx, func(kv *storage.KVRepo) error {
		if err := s.putJSON(ctx, kv, todosKey(s.today), todos); err != nil {
			return err
		}
		if cascaded == 0 {
			return nil
		}
		return s.putJSON(ctx, kv, weeklyTodosKey, weekly)
	})
	if err != nil {
		return false, err
	}
	s.todos, s.weeklyTodos = todos, weekly
	s.logger.Info("todo deleted", "id", id, "weekly_removed", cascaded)
	return true, nil
}

func (s *Service) DeleteWeeklyTodo(ctx context.Context, id ID, confirm ConfirmFunc) (bool, error) {
	i := slices.IndexFunc(s.weeklyTodos, func(w WeeklyTodo) bool { return w.ID == id })
	if i < 0 {
		return false, nil
	}
	if !s.confirmed(confirm, fmt.Sprintf("Delete weekly todo %q?", s.weeklyTodos[i].Text)) {
		return false, nil
	}
	weekly := slices.Delete(slices.Clone(s.weeklyTodos), i, i+1)
	if err := s.putJSON(ctx, s.kv, weeklyTodosKey, weekly); err != nil {
		return false, err
	}
	s.weeklyTodos = weekly
	s.logger.Info("weekly todo deleted", "id", id)
	return true, nil
}

func (s *Service) DeleteGoal(ctx context.Context, id ID, confirm ConfirmFunc) (bool, error) {
	i := slices.IndexFunc(s.goals, func(g Goal) bool { return g.ID == id })
	if i < 0 {
		return false, nil
	}
	if !s.confirmed(confirm, fmt.Sprintf("Delete goal %q?", s.goals[i].Text)) {
		return false, nil
	}
	goals := slices.Delete(slices.Clone(s.goals), i, i+1)
	if err := s.putJSON(ctx, s.kv, goalsKey(s.year, s.quarter), goals); err != nil {
		return false, err
	}
	s.goals = goals
	s.logger.Info("goal deleted", "id", id)
	return true, nil
}

// DeleteJournal removes the journal and reclamps the navigator.
func (s *Service) DeleteJournal(ctx context.Context, id ID, confirm ConfirmFunc) (bool, error) {
	i := slices.IndexFunc(s.journals, func(j Journal) bool { return j.ID == id })
	if i < 0 {
		return false, nil
	}
	if !s.confirmed(confirm, fmt.Sprintf("Delete the journal from %s?", s.journals[i].Date)) {
		return false, nil
	}
	journals := slices.Delete(slices.Clone(s.journals), i, i+1)
	if err := s.putJSON(ctx, s.kv, journalsKey, journals); err != nil {
		return false, err
	}
	s.journals = journals
	s.journal.Clamp(len(s.journals))
	s.logger.Info("journal deleted", "id", id)
	return true, nil
}
