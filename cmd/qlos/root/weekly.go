package root

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Brooklss/Quarterly-Life-OS/internal/engine"
	"github.com/Brooklss/Quarterly-Life-OS/internal/ui"
)

func newWeeklyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "weekly",
		Short: "Manage weekly todos",
	}
	cmd.AddCommand(
		newWeeklyAddCmd(),
		newWeeklyEditCmd(),
		newWeeklyRmCmd(),
		newWeeklyListCmd(),
	)
	return cmd
}

func newWeeklyAddCmd() *cobra.Command {
	var due, repeat, days string

	cmd := &cobra.Command{
		Use:   "add <text>",
		Short: "Add a weekly todo due on a day",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("text is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			r, d, err := parseRepeatFlags(repeat, days)
			if err != nil {
				return err
			}

			ctx := context.Background()
			s, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			if due == "" {
				due = s.svc.Today().String()
			}
			t, err := s.svc.AddWeeklyTodo(ctx, engine.WeeklyTodoInput{
				Text:       strings.Join(args, " "),
				DueDate:    due,
				Repeat:     r,
				CustomDays: d,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Added weekly todo %s %s due %s\n", ui.IconPlus, ui.Key.Render(t.ID.String()), t.Text, t.DueDate)
			if t.Completed {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Due today, so it is on today's list as well."))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&due, "due", "", "Due date as YYYY-MM-DD (default today)")
	cmd.Flags().StringVarP(&repeat, "repeat", "r", "none", "Repeat (none|weekly|custom)")
	cmd.Flags().StringVar(&days, "days", "", "Weekdays for custom repeat, e.g. mon,wed,fri")
	return cmd
}

func newWeeklyEditCmd() *cobra.Command {
	var text, due, repeat, days string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change a weekly todo",
		Args:  idArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, _ := parseID(args[0])

			ctx := context.Background()
			s, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			weekly := s.svc.WeeklyTodos()
			i := slices.IndexFunc(weekly, func(t engine.WeeklyTodo) bool { return t.ID == id })
			if i < 0 {
				reportMissing(cmd, "weekly todo", id)
				return nil
			}
			cur := weekly[i]
			in := engine.WeeklyTodoInput{Text: cur.Text, DueDate: cur.DueDate, Repeat: cur.Repeat, CustomDays: cur.CustomDays}
			if cmd.Flags().Changed("text") {
				in.Text = text
			}
			if cmd.Flags().Changed("due") {
				in.DueDate = due
			}
			if cmd.Flags().Changed("repeat") || cmd.Flags().Changed("days") {
				if !cmd.Flags().Changed("repeat") {
					repeat = string(in.Repeat)
				}
				if in.Repeat, in.CustomDays, err = parseRepeatFlags(repeat, days); err != nil {
					return err
				}
			}

			if _, err := s.svc.EditWeeklyTodo(ctx, id, in); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Updated weekly todo %s\n", ui.IconDone, ui.Key.Render(id.String()))
			return nil
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "New text")
	cmd.Flags().StringVar(&due, "due", "", "New due date as YYYY-MM-DD")
	cmd.Flags().StringVarP(&repeat, "repeat", "r", "", "Repeat (none|weekly|custom)")
	cmd.Flags().StringVar(&days, "days", "", "Weekdays for custom repeat, e.g. mon,wed,fri")
	return cmd
}

func newWeeklyRmCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a weekly todo",
		Args:    idArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, _ := parseID(args[0])

			ctx := context.Background()
			s, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			ok, err := s.svc.DeleteWeeklyTodo(ctx, id, s.confirm(cmd))
			return printDeleted(cmd, ok, err, "weekly todo", id)
		},
	}
	return cmd
}

func newWeeklyListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List weekly todos by due date",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			s, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			printWeeklyTodos(cmd.OutOrStdout(), s.svc.WeeklyTodosByDue())
			return nil
		},
	}
	return cmd
}
