package root

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Brooklss/Quarterly-Life-OS/internal/engine"
	"github.com/Brooklss/Quarterly-Life-OS/internal/ui"
)

func newHabitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "habit",
		Short: "Manage the habits of the selected quarter",
	}
	cmd.AddCommand(
		newHabitAddCmd(),
		newHabitEditCmd(),
		newHabitToggleCmd(),
		newHabitRmCmd(),
		newHabitListCmd(),
	)
	return cmd
}

func newHabitAddCmd() *cobra.Command {
	var color string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a habit to the selected quarter",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("name is required")
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

			h, err := s.svc.AddHabit(ctx, engine.HabitInput{Name: strings.Join(args, " "), Color: color})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Added habit %s %s %s\n", ui.IconPlus, ui.Key.Render(h.ID.String()), h.Name,
				ui.Muted.Render(fmt.Sprintf("(%d Q%d)", h.Year, h.Quarter)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&color, "color", "c", "", "Color as #rrggbb (default "+engine.DefaultHabitColor+")")
	return cmd
}

func newHabitEditCmd() *cobra.Command {
	var name, color string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Rename or recolor a habit",
		Args:  idArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, _ := parseID(args[0])

			ctx := context.Background()
			s, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			h, ok := s.svc.HabitByID(id)
			if !ok {
				reportMissing(cmd, "habit this quarter", id)
				return nil
			}
			in := engine.HabitInput{Name: h.Name, Color: h.Color}
			if cmd.Flags().Changed("name") {
				in.Name = name
			}
			if cmd.Flags().Changed("color") {
				in.Color = color
			}
			if _, err := s.svc.EditHabit(ctx, id, in); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Updated habit %s\n", ui.IconDone, ui.Key.Render(id.String()))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().StringVarP(&color, "color", "c", "", "New color as #rrggbb")
	return cmd
}

func newHabitToggleCmd() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "toggle <id>",
		Short: "Check or uncheck a habit for a day (default today)",
		Args:  idArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, _ := parseID(args[0])

			ctx := context.Background()
			var s *session
			var day engine.Day
			if date != "" {
				d, err := engine.ParseDay(date)
				if err != nil {
					return fmt.Errorf("--date: %w", err)
				}
				day = d
				if s, err = openSessionAt(ctx, d.Year(), d.Quarter()); err != nil {
					return err
				}
			} else {
				var err error
				if s, err = openSessionAt(ctx, 0, 0); err != nil {
					return err
				}
				day = s.svc.Today()
			}
			defer s.Close()

			month := int(day.Month()) - (day.Quarter()-1)*3
			checked, found, err := s.svc.ToggleCell(ctx, id, month, day.DayOfMonth())
			if err != nil {
				return err
			}
			if !found {
				reportMissing(cmd, fmt.Sprintf("habit in %d Q%d", day.Year(), day.Quarter()), id)
				return nil
			}
			h, _ := s.svc.HabitByID(id)
			verb := "unchecked"
			if checked {
				verb = "checked"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s on %s %s\n", ui.Cell(h.Color, checked, false, false), h.Name, verb, day.String(),
				ui.Muted.Render(fmt.Sprintf("(streak %d)", h.Streak)))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day to toggle as YYYY-MM-DD")
	return cmd
}

func newHabitRmCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a habit and all of its check marks",
		Args:    idArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, _ := parseID(args[0])

			ctx := context.Background()
			s, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			ok, err := s.svc.DeleteHabit(ctx, id, s.confirm(cmd))
			return printDeleted(cmd, ok, err, "habit", id)
		},
	}
	return cmd
}

func newHabitListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the habits of the selected quarter",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			s, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			w := cmd.OutOrStdout()
			habits := s.svc.Habits()
			if len(habits) == 0 {
				fmt.Fprintln(w, ui.Muted.Render("(no habits this quarter)"))
				return nil
			}
			cells := s.svc.Cells()
			for _, h := range habits {
				fmt.Fprintf(w, "%s %s %s %s\n", ui.Key.Render(h.ID.String()), h.Name, ui.Muted.Render(h.Color),
					ui.Muted.Render(fmt.Sprintf("streak %d, %d checked", h.Streak, engine.CountChecked(cells, h.ID))))
			}
			return nil
		},
	}
	return cmd
}
