package engine

import (
	"context"
	"fmt"
	"maps"
	"slices"
)

// ToggleCell flips the check for habitID on day of the given month of the
// selected quarter (month 1..3). Days past the end of the month are disabled
// in the grid and rejected here.
func (s *Service) ToggleCell(ctx context.Context, habitID ID, month, day int) (checked, found bool, err error) {
	if month < 1 || month > 3 {
		return false, false, ValidationError{Field: "month", Reason: fmt.Sprintf("%d is not a month of the quarter (1..3)", month)}
	}
	m := QuarterMonths(s.quarter)[month-1]
	if last := DaysIn(s.year, m); day < 1 || day > last {
		return false, false, ValidationError{Field: "day", Reason: fmt.Sprintf("%s %d has days 1..%d", m, s.year, last)}
	}

	habits := slices.Clone(s.habits)
	cells := maps.Clone(s.cells)
	if cells == nil {
		cells = HabitCells{}
	}
	checked, found = ToggleCell(habits, cells, habitID, month, day, s.streakMode)
	if !found {
		return false, false, nil
	}

	prevHabits, prevCells := s.habits, s.cells
	s.habits, s.cells = habits, cells
	if err := s.persistHabitsAndCells(ctx); err != nil {
		s.habits, s.cells = prevHabits, prevCells
		return false, true, err
	}
	return checked, true, nil
}

// HabitByID returns the habit of the selected quarter with id.
func (s *Service) HabitByID(id ID) (Habit, bool) {
	i := slices.IndexFunc(s.habits, func(h Habit) bool { return h.ID == id })
	if i < 0 {
		return Habit{}, false
	}
	return s.habits[i], true
}
