package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Brooklss/Quarterly-Life-OS/internal/ui"
)

// newDoCmd is the top-level shortcut for "todo done".
func newDoCmd() *cobra.Command {
	cmd := newTodoDoneCmd()
	cmd.Use = "do <id>"
	cmd.Short = "Toggle a todo done/undone (same as todo done)"
	return cmd
}

func newTodoDoneCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "done <id>",
		Short: "Toggle a todo done/undone",
		Args:  idArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, _ := parseID(args[0])

			ctx := context.Background()
			s, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			done, found, err := s.svc.ToggleTodo(ctx, id)
			if err != nil {
				return err
			}
			if !found {
				reportMissing(cmd, "todo for today", id)
				return nil
			}
			if done {
				fmt.Fprintf(cmd.OutOrStdout(), "%s Todo %s done\n", ui.IconDone, ui.Key.Render(id.String()))
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%s Todo %s reopened\n", ui.Checkbox(false), ui.Key.Render(id.String()))
			}
			return nil
		},
	}

	return cmd
}

func newGoalDoneCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "done <id>",
		Short: "Toggle a goal done/undone",
		Args:  idArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, _ := parseID(args[0])

			ctx := context.Background()
			s, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			done, found, err := s.svc.ToggleGoal(ctx, id)
			if err != nil {
				return err
			}
			if !found {
				reportMissing(cmd, "goal this quarter", id)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Goal %s %s\n", ui.Checkbox(done), ui.Key.Render(id.String()), map[bool]string{true: "done", false: "reopened"}[done])
			return nil
		},
	}

	return cmd
}
