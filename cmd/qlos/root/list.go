package root

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Brooklss/Quarterly-Life-OS/internal/engine"
	"github.com/Brooklss/Quarterly-Life-OS/internal/ui"
)

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List today's todos and the weekly todos",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			s, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			w := cmd.OutOrStdout()
			fmt.Fprintln(w, ui.Heading(ui.IconTodo, "Today "+s.svc.Today().String()))
			printTodos(w, s.svc.TodayTodos())
			fmt.Fprintln(w, "")
			fmt.Fprintln(w, ui.Heading(ui.IconWeekly, "This week"))
			printWeeklyTodos(w, s.svc.WeeklyTodosByDue())
			return nil
		},
	}

	return cmd
}

func newTodoListCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List today's todos",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			s, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			todos := s.svc.TodayTodos()
			if all {
				todos = s.svc.Todos()
			}
			printTodos(cmd.OutOrStdout(), todos)
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include carried-over recurrence sources")
	return cmd
}

func printTodos(w io.Writer, todos []engine.Todo) {
	if len(todos) == 0 {
		fmt.Fprintln(w, ui.Muted.Render("(no todos)"))
		return
	}
	for _, t := range todos {
		fmt.Fprintf(w, "%s %s %s%s\n", ui.Checkbox(t.Completed), ui.Key.Render(t.ID.String()), t.Text, repeatSuffix(t.Repeat, t.CustomDays))
	}
}

func printWeeklyTodos(w io.Writer, todos []engine.WeeklyTodo) {
	if len(todos) == 0 {
		fmt.Fprintln(w, ui.Muted.Render("(no weekly todos)"))
		return
	}
	for _, t := range todos {
		fmt.Fprintf(w, "%s %s %s %s%s\n", ui.Checkbox(t.Completed), ui.Key.Render(t.ID.String()), ui.Muted.Render(t.DueDate), t.Text, repeatSuffix(t.Repeat, t.CustomDays))
	}
}

var weekdayAbbrev = [7]string{"sun", "mon", "tue", "wed", "thu", "fri", "sat"}

func repeatSuffix(r engine.Repeat, days []int) string {
	switch r {
	case engine.RepeatNone, "":
		return ""
	case engine.RepeatCustom:
		s := ""
		for i, d := range days {
			if i > 0 {
				s += ","
			}
			if d >= 0 && d < 7 {
				s += weekdayAbbrev[d]
			}
		}
		return " " + ui.Muted.Render(ui.IconLoop+" "+s)
	default:
		return " " + ui.Muted.Render(ui.IconLoop+" "+string(r))
	}
}
