package engine

import "fmt"

// Store keys. Habits, cells and goals are scoped to a year/quarter, todos to
// a calendar day, the rest are global.
const (
	todosKeyPrefix = "todos_"
	weeklyTodosKey = "weekly_todos"
	journalsKey    = "weekly_journals"
	darkModeKey    = "darkMode"
)

func habitsKey(year, quarter int) string {
	return fmt.Sprintf("habits_%d_Q%d", year, quarter)
}

func habitCellsKey(year, quarter int) string {
	return fmt.Sprintf("habitTracker_%d_Q%d", year, quarter)
}

func goalsKey(year, quarter int) string {
	return fmt.Sprintf("goals_%d_Q%d", year, quarter)
}

func todosKey(day Day) string {
	return todosKeyPrefix + day.String()
}
