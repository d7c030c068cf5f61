package root

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/Brooklss/Quarterly-Life-OS/internal/tui"
	"github.com/Brooklss/Quarterly-Life-OS/internal/ui"
)

func newBoardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Open the TUI dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			s, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			ui.SetDark(s.svc.DarkMode())
			return tui.RunBoard(ctx, s.svc, s.report, cmd.OutOrStdout())
		},
	}

	return cmd
}
