package root

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Brooklss/Quarterly-Life-OS/internal/engine"
	"github.com/Brooklss/Quarterly-Life-OS/internal/ui"
)

func newExportCmd() *cobra.Command {
	var format, output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the selected quarter, the weekly todos and the journals",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := engine.ParseExportFormat(format)
			if err != nil {
				return err
			}

			ctx := context.Background()
			s, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			if output == "-" {
				return s.svc.Export(cmd.OutOrStdout(), f)
			}
			if output == "" {
				output = s.svc.ExportFileName(f)
			}
			file, err := os.Create(output)
			if err != nil {
				return err
			}
			if err := s.svc.Export(file, f); err != nil {
				_ = file.Close()
				return err
			}
			if err := file.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Exported %d Q%d to %s\n", ui.IconDone, s.svc.Year(), s.svc.Quarter(), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "Output format (json|yaml)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file, - for stdout (default habit_tracker_data_<year>_Q<quarter>.<ext>)")
	return cmd
}

func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file|->",
		Short: "Replace the stored data with an exported file",
		Long:  "Replace the habits and cells of the file's quarter, the goals, today's todos, the weekly todos and the journals with the contents of an exported JSON file.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				file, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer file.Close()
				r = file
			}

			ctx := context.Background()
			s, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			b, err := s.svc.Import(ctx, r)
			if err != nil {
				var ie engine.ImportError
				if errors.As(err, &ie) {
					fmt.Fprintln(cmd.ErrOrStderr(), ui.Warn.Render(ui.IconWarn+" Nothing was changed."))
				}
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Imported %d habits, %d goals, %d todos, %d weekly todos, %d journal entries into %d Q%d\n",
				ui.IconDone, len(b.Habits), len(b.Goals), len(b.Todos), len(b.WeeklyTodos), len(b.Journals), s.svc.Year(), s.svc.Quarter())
			return nil
		},
	}

	return cmd
}
