package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Brooklss/Quarterly-Life-OS/internal/ui"
)

func newThemeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "theme [dark|light|toggle]",
		Short:     "Show or change the color theme",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"dark", "light", "toggle"},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			s, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			on := s.svc.DarkMode()
			if len(args) == 1 {
				switch args[0] {
				case "dark":
					on, err = true, s.svc.SetDarkMode(ctx, true)
				case "light":
					on, err = false, s.svc.SetDarkMode(ctx, false)
				case "toggle":
					on, err = s.svc.ToggleDarkMode(ctx)
				default:
					return fmt.Errorf("invalid theme: %q (want dark|light|toggle)", args[0])
				}
				if err != nil {
					return err
				}
			}

			ui.SetDark(on)
			name := "light"
			if on {
				name = "dark"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.ModeIcon(), ui.Title.Render("Theme: "+name))
			return nil
		},
	}

	return cmd
}
