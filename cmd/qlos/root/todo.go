package root

import (
	"context"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/Brooklss/Quarterly-Life-OS/internal/engine"
	"github.com/Brooklss/Quarterly-Life-OS/internal/ui"
)

func newTodoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "todo",
		Short: "Manage today's todos",
	}
	cmd.AddCommand(
		newTodoAddCmd(),
		newTodoEditCmd(),
		newTodoDoneCmd(),
		newTodoRmCmd(),
		newTodoListCmd(),
	)
	return cmd
}

func newTodoEditCmd() *cobra.Command {
	var text, repeat, days string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change a todo's text or repetition",
		Args:  idArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, _ := parseID(args[0])

			ctx := context.Background()
			s, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			todos := s.svc.Todos()
			i := slices.IndexFunc(todos, func(t engine.Todo) bool { return t.ID == id })
			if i < 0 {
				reportMissing(cmd, "todo for today", id)
				return nil
			}
			in := engine.TodoInput{Text: todos[i].Text, Repeat: todos[i].Repeat, CustomDays: todos[i].CustomDays}
			if cmd.Flags().Changed("text") {
				in.Text = text
			}
			if cmd.Flags().Changed("repeat") || cmd.Flags().Changed("days") {
				if !cmd.Flags().Changed("repeat") {
					repeat = string(in.Repeat)
				}
				if in.Repeat, in.CustomDays, err = parseRepeatFlags(repeat, days); err != nil {
					return err
				}
			}

			if _, err := s.svc.EditTodo(ctx, id, in); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Updated todo %s\n", ui.IconDone, ui.Key.Render(id.String()))
			return nil
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "New text")
	cmd.Flags().StringVarP(&repeat, "repeat", "r", "", "Repeat (none|daily|weekly|custom)")
	cmd.Flags().StringVar(&days, "days", "", "Weekdays for custom repeat, e.g. mon,wed,fri")
	return cmd
}

func newTodoRmCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a todo (and weekly todos with the same text)",
		Args:    idArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, _ := parseID(args[0])

			ctx := context.Background()
			s, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			ok, err := s.svc.DeleteTodo(ctx, id, s.confirm(cmd))
			return printDeleted(cmd, ok, err, "todo", id)
		},
	}
	return cmd
}

func printDeleted(cmd *cobra.Command, ok bool, err error, kind string, id engine.ID) error {
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render(fmt.Sprintf("Nothing deleted (no %s %d, or not confirmed).", kind, id)))
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s Deleted %s %s\n", ui.IconDone, kind, ui.Key.Render(id.String()))
	return nil
}
