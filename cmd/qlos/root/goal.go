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

func newGoalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goal",
		Short: "Manage the goals of the selected quarter",
	}
	cmd.AddCommand(
		newGoalAddCmd(),
		newGoalEditCmd(),
		newGoalDoneCmd(),
		newGoalRmCmd(),
		newGoalListCmd(),
	)
	return cmd
}

func newGoalAddCmd() *cobra.Command {
	var system string

	cmd := &cobra.Command{
		Use:   "add <text> --system <system>",
		Short: "Add a goal and the system that gets you there",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("text is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			s, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			g, err := s.svc.AddGoal(ctx, engine.GoalInput{Text: strings.Join(args, " "), System: system})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Added goal %s %s\n", ui.IconPlus, ui.Key.Render(g.ID.String()), g.Text)
			return nil
		},
	}

	cmd.Flags().StringVarP(&system, "system", "s", "", "The system that serves the goal (required)")
	return cmd
}

func newGoalEditCmd() *cobra.Command {
	var text, system string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change a goal's text or system",
		Args:  idArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, _ := parseID(args[0])

			ctx := context.Background()
			s, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			goals := s.svc.Goals()
			i := slices.IndexFunc(goals, func(g engine.Goal) bool { return g.ID == id })
			if i < 0 {
				reportMissing(cmd, "goal this quarter", id)
				return nil
			}
			in := engine.GoalInput{Text: goals[i].Text, System: goals[i].System}
			if cmd.Flags().Changed("text") {
				in.Text = text
			}
			if cmd.Flags().Changed("system") {
				in.System = system
			}
			if _, err := s.svc.EditGoal(ctx, id, in); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Updated goal %s\n", ui.IconDone, ui.Key.Render(id.String()))
			return nil
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "New text")
	cmd.Flags().StringVarP(&system, "system", "s", "", "New system")
	return cmd
}

func newGoalRmCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a goal",
		Args:    idArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, _ := parseID(args[0])

			ctx := context.Background()
			s, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			ok, err := s.svc.DeleteGoal(ctx, id, s.confirm(cmd))
			return printDeleted(cmd, ok, err, "goal", id)
		},
	}
	return cmd
}

func newGoalListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the goals of the selected quarter",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			s, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			w := cmd.OutOrStdout()
			goals := s.svc.Goals()
			if len(goals) == 0 {
				fmt.Fprintln(w, ui.Muted.Render("(no goals this quarter)"))
				return nil
			}
			for _, g := range goals {
				fmt.Fprintf(w, "%s %s %s\n", ui.Checkbox(g.Completed), ui.Key.Render(g.ID.String()), g.Text)
				fmt.Fprintf(w, "    %s\n", ui.Muted.Render("system: "+g.System))
			}
			return nil
		},
	}
	return cmd
}
