package engine

import (
	"context"
	"slices"
)

// ToggleTodo flips a todo's completion. found is false when no todo in
// today's list has the id.
func (s *Service) ToggleTodo(ctx context.Context, id ID) (completed, found bool, err error) {
	i := slices.IndexFunc(s.todos, func(t Todo) bool { return t.ID == id })
	if i < 0 {
		return false, false, nil
	}
	todos := slices.Clone(s.todos)
	todos[i].Completed = !todos[i].Completed
	if err := s.putJSON(ctx, s.kv, todosKey(s.today), todos); err != nil {
		return false, true, err
	}
	s.todos = todos
	return todos[i].Completed, true, nil
}

func (s *Service) ToggleGoal(ctx context.Context, id ID) (completed, found bool, err error) {
	i := slices.IndexFunc(s.goals, func(g Goal) bool { return g.ID == id })
	if i < 0 {
		return false, false, nil
	}
	goals := slices.Clone(s.goals)
	goals[i].Completed = !goals[i].Completed
	if err := s.putJSON(ctx, s.kv, goalsKey(s.year, s.quarter), goals); err != nil {
		return false, true, err
	}
	s.goals = goals
	return goals[i].Completed, true, nil
}

// TodayTodos returns the todos dated today. Carried-over recurrence sources
// keep their old date and are left out.
func (s *Service) TodayTodos() []Todo {
	today := s.today.String()
	out := []Todo{}
	for _, t := range s.todos {
		if t.Date == today {
			out = append(out, t)
		}
	}
	return out
}

// WeeklyTodosByDue returns the weekly todos ordered by due date. Equal dates
// keep their stored order.
func (s *Service) WeeklyTodosByDue() []WeeklyTodo {
	out := slices.Clone(s.weeklyTodos)
	slices.SortStableFunc(out, func(a, b WeeklyTodo) int {
		switch {
		case a.DueDate < b.DueDate:
			return -1
		case a.DueDate > b.DueDate:
			return 1
		default:
			return 0
		}
	})
	return out
}
