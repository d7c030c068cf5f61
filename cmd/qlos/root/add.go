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

// newAddCmd is the top-level shortcut for "todo add".
func newAddCmd() *cobra.Command {
	cmd := newTodoAddCmd()
	cmd.Short = "Add a todo for today (same as todo add)"
	return cmd
}

func newTodoAddCmd() *cobra.Command {
	var repeat string
	var days string

	cmd := &cobra.Command{
		Use:   "add <text>",
		Short: "Add a todo for today",
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

			t, err := s.svc.AddTodo(ctx, engine.TodoInput{
				Text:       strings.Join(args, " "),
				Repeat:     r,
				CustomDays: d,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Added todo %s %s\n", ui.IconPlus, ui.Key.Render(t.ID.String()), t.Text)
			return nil
		},
	}

	cmd.Flags().StringVarP(&repeat, "repeat", "r", "none", "Repeat (none|daily|weekly|custom)")
	cmd.Flags().StringVar(&days, "days", "", "Weekdays for custom repeat, e.g. mon,wed,fri")

	return cmd
}
