package tui

import (
	"fmt"
	"strings"

	"github.com/Brooklss/Quarterly-Life-OS/internal/engine"
	"github.com/Brooklss/Quarterly-Life-OS/internal/ui"
)

// RenderGrid draws the quarter as three month columns with one glyph per
// habit on every day row, followed by a streak meter per habit.
func RenderGrid(g engine.Grid) string {
	var b strings.Builder
	b.WriteString(ui.Heading(ui.IconCalendar, fmt.Sprintf("%d Q%d", g.Year, g.Quarter)))
	b.WriteString("\n")
	if len(g.Habits) == 0 {
		b.WriteString(ui.Muted.Render("(no habits this quarter)"))
		b.WriteString("\n")
		return b.String()
	}

	colW := len(g.Habits) + 1
	if colW < 4 {
		colW = 4
	}
	b.WriteString("    ")
	for _, m := range g.Months {
		b.WriteString(ui.H2.Render(padRight(m.Month.String()[:3], colW)))
		b.WriteString(" ")
	}
	b.WriteString("\n")

	for d := 0; d < engine.GridRows; d++ {
		b.WriteString(ui.Muted.Render(fmt.Sprintf("%3d ", d+1)))
		for _, m := range g.Months {
			for _, c := range m.Rows[d] {
				b.WriteString(ui.Cell(c.Color, c.Checked, c.Today, c.Disabled))
			}
			b.WriteString(strings.Repeat(" ", colW-len(m.Rows[d])+1))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	for _, h := range g.Habits {
		b.WriteString(fmt.Sprintf("%s %s\n", padRight(h.Name, 16), ui.StreakBar(h.Color, engine.StreakFill(h.Streak), h.Streak, 24)))
	}
	return b.String()
}

func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) >= width {
		return string(r[:width])
	}
	return s + strings.Repeat(" ", width-len(r))
}
