package root

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Brooklss/Quarterly-Life-OS/internal/ui"
)

func newQuartersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quarters",
		Short: "List the quarters that have habits or goals",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			s, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			list, err := s.svc.StoredQuarters(ctx)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if len(list) == 0 {
				fmt.Fprintln(w, ui.Muted.Render("(nothing stored yet)"))
				return nil
			}
			for _, q := range list {
				var parts []string
				if q.Habits {
					parts = append(parts, "habits")
				}
				if q.Goals {
					parts = append(parts, "goals")
				}
				line := fmt.Sprintf("%s %s", ui.Key.Render(fmt.Sprintf("%d Q%d", q.Year, q.Quarter)), strings.Join(parts, ", "))
				if q.UpdatedAt != nil {
					line += " " + ui.Muted.Render("(saved "+q.UpdatedAt.Local().Format(time.DateTime)+")")
				}
				if q.Year == s.svc.Year() && q.Quarter == s.svc.Quarter() {
					line += " " + ui.Gold.Render("*")
				}
				fmt.Fprintln(w, line)
			}
			return nil
		},
	}

	return cmd
}
