package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Brooklss/Quarterly-Life-OS/internal/engine"
	"github.com/Brooklss/Quarterly-Life-OS/internal/ui"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the quarter overview",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			s, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer s.Close()
			ui.SetDark(s.svc.DarkMode())

			w := cmd.OutOrStdout()
			svc := s.svc
			fmt.Fprintln(w, ui.Heading(ui.IconCalendar, fmt.Sprintf("%d Q%d", svc.Year(), svc.Quarter())))
			fmt.Fprintln(w, ui.LabelValue("Today", svc.Today().String()))
			fmt.Fprintln(w, ui.LabelValue("Streak mode", svc.StreakMode()))
			fmt.Fprintln(w, "")

			fmt.Fprintln(w, ui.H2.Render(ui.IconHabit+" Habits"))
			habits := svc.Habits()
			if len(habits) == 0 {
				fmt.Fprintln(w, ui.Muted.Render("(no habits this quarter)"))
			}
			for _, h := range habits {
				fmt.Fprintf(w, "- %s %s %s\n", ui.Key.Render(h.ID.String()), h.Name, ui.StreakBar(h.Color, engine.StreakFill(h.Streak), h.Streak, 20))
			}
			fmt.Fprintln(w, "")

			goals := svc.Goals()
			done := 0
			for _, g := range goals {
				if g.Completed {
					done++
				}
			}
			fmt.Fprintln(w, ui.H2.Render(ui.IconGoal+" Goals"))
			fmt.Fprintf(w, "- %s %s\n", ui.Key.Render("Completed:"), goalProgress(done, len(goals)))
			fmt.Fprintln(w, "")

			today := svc.TodayTodos()
			openToday := 0
			for _, t := range today {
				if !t.Completed {
					openToday++
				}
			}
			_, journals := svc.JournalPosition()
			fmt.Fprintln(w, ui.H2.Render(ui.IconTodo+" Lists"))
			fmt.Fprintf(w, "- %s %d %s\n", ui.Key.Render("Todos today:"), len(today), ui.Muted.Render(fmt.Sprintf("(%d open)", openToday)))
			fmt.Fprintf(w, "- %s %d\n", ui.Key.Render("Weekly todos:"), len(svc.WeeklyTodos()))
			fmt.Fprintf(w, "- %s %d\n", ui.Key.Render("Journal entries:"), journals)

			return nil
		},
	}

	return cmd
}

func goalProgress(done, total int) string {
	s := fmt.Sprintf("%d/%d", done, total)
	switch {
	case total == 0:
		return ui.Muted.Render(s)
	case done == total:
		return ui.Good.Render(s)
	default:
		return ui.Warn.Render(s)
	}
}
