package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Brooklss/Quarterly-Life-OS/internal/tui"
	"github.com/Brooklss/Quarterly-Life-OS/internal/ui"
)

func newGridCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grid",
		Short: "Print the habit grid of the selected quarter",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			s, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			ui.SetDark(s.svc.DarkMode())
			fmt.Fprintln(cmd.OutOrStdout(), tui.RenderGrid(s.svc.Grid()))
			return nil
		},
	}

	return cmd
}
