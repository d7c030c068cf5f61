package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Brooklss/Quarterly-Life-OS/internal/ui"
)

// newSyncCmd runs a load, which is where the recurrence passes happen, and
// reports what they produced.
func newSyncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Run the daily recurrence passes and show what they produced",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			s, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			rep := s.report
			s.logger.Debug("sync finished", "report", fmt.Sprintf("%+v", rep))

			w := cmd.OutOrStdout()
			if !rep.Changed() {
				fmt.Fprintln(w, ui.Muted.Render("Nothing to do for "+s.svc.Today().String()+"."))
				return nil
			}
			fmt.Fprintln(w, ui.Heading(ui.IconLoop, "Recurrence for "+s.svc.Today().String()))
			fmt.Fprintln(w, ui.LabelValue("Weekly todos due today", rep.Materialized+rep.LateMaterialized))
			fmt.Fprintln(w, ui.LabelValue("Repeated todos", rep.TodoClones))
			fmt.Fprintln(w, ui.LabelValue("Repeated weekly todos", rep.WeeklyClones))
			return nil
		},
	}

	return cmd
}
