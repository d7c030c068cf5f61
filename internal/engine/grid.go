package engine

import "time"

// GridRows is the fixed number of day rows in every month column.
const GridRows = 31

type GridCell struct {
	HabitID ID
	Color   string
	Checked bool
	// Today marks the cell of the current calendar day.
	Today bool
	// Disabled cells lie past the end of a short month and cannot be toggled.
	Disabled bool
}

type GridMonth struct {
	Index int // 1..3 within the quarter, the month segment of a cell key
	Month time.Month
	Days  int
	// Rows[d-1] holds one cell per habit, in habit order.
	Rows [GridRows][]GridCell
}

type Grid struct {
	Year    int
	Quarter int
	Habits  []Habit
	Months  [3]GridMonth
}

// BuildGrid lays out the quarter as three month columns of 31 day rows.
func BuildGrid(year, quarter int, habits []Habit, cells HabitCells, today Day) Grid {
	g := Grid{Year: year, Quarter: quarter, Habits: habits}
	for mi, m := range QuarterMonths(quarter) {
		gm := GridMonth{Index: mi + 1, Month: m, Days: DaysIn(year, m)}
		for d := 1; d <= GridRows; d++ {
			row := make([]GridCell, 0, len(habits))
			isToday := today.Year() == year && today.Month() == m && today.DayOfMonth() == d
			for _, h := range habits {
				row = append(row, GridCell{
					HabitID:  h.ID,
					Color:    h.Color,
					Checked:  cells[CellKey(mi+1, d, h.ID)],
					Today:    isToday,
					Disabled: d > gm.Days,
				})
			}
			gm.Rows[d-1] = row
		}
		g.Months[mi] = gm
	}
	return g
}

// Grid returns the grid of the selected quarter.
func (s *Service) Grid() Grid {
	return BuildGrid(s.year, s.quarter, s.Habits(), s.cells, s.today)
}
