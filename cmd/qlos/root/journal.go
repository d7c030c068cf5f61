package root

import (
	"context"
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"

	"github.com/Brooklss/Quarterly-Life-OS/internal/engine"
	"github.com/Brooklss/Quarterly-Life-OS/internal/ui"
)

func newJournalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Write and read weekly journal entries",
	}
	cmd.AddCommand(
		newJournalAddCmd(),
		newJournalEditCmd(),
		newJournalRmCmd(),
		newJournalShowCmd(),
		newJournalListCmd(),
	)
	return cmd
}

type journalFlags struct {
	workedWell      string
	didntWork       string
	needsAdjustment string
	feel            string
}

func (f *journalFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.workedWell, "worked-well", "", "What worked well")
	cmd.Flags().StringVar(&f.didntWork, "didnt-work", "", "What didn't work")
	cmd.Flags().StringVar(&f.needsAdjustment, "needs-adjustment", "", "What needs adjustment")
	cmd.Flags().StringVar(&f.feel, "feel", "", "How the week felt")
}

// apply overwrites the fields of in whose flags were given.
func (f *journalFlags) apply(cmd *cobra.Command, in engine.JournalInput) engine.JournalInput {
	if cmd.Flags().Changed("worked-well") {
		in.WorkedWell = f.workedWell
	}
	if cmd.Flags().Changed("didnt-work") {
		in.DidntWork = f.didntWork
	}
	if cmd.Flags().Changed("needs-adjustment") {
		in.NeedsAdjustment = f.needsAdjustment
	}
	if cmd.Flags().Changed("feel") {
		in.Feel = f.feel
	}
	return in
}

func newJournalAddCmd() *cobra.Command {
	var f journalFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Write a journal entry dated today",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			s, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			j, err := s.svc.AddJournal(ctx, f.apply(cmd, engine.JournalInput{}))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Added journal entry %s for %s\n", ui.IconPlus, ui.Key.Render(j.ID.String()), j.Date)
			return nil
		},
	}

	f.register(cmd)
	return cmd
}

func newJournalEditCmd() *cobra.Command {
	var f journalFlags

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Rewrite a journal entry (its date becomes today)",
		Args:  idArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, _ := parseID(args[0])

			ctx := context.Background()
			s, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			journals := s.svc.Journals()
			i := slices.IndexFunc(journals, func(j engine.Journal) bool { return j.ID == id })
			if i < 0 {
				reportMissing(cmd, "journal entry", id)
				return nil
			}
			cur := journals[i]
			in := f.apply(cmd, engine.JournalInput{
				WorkedWell:      cur.WorkedWell,
				DidntWork:       cur.DidntWork,
				NeedsAdjustment: cur.NeedsAdjustment,
				Feel:            cur.Feel,
			})
			if _, err := s.svc.EditJournal(ctx, id, in); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Updated journal entry %s\n", ui.IconDone, ui.Key.Render(id.String()))
			return nil
		},
	}

	f.register(cmd)
	return cmd
}

func newJournalRmCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a journal entry",
		Args:    idArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, _ := parseID(args[0])

			ctx := context.Background()
			s, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			ok, err := s.svc.DeleteJournal(ctx, id, s.confirm(cmd))
			return printDeleted(cmd, ok, err, "journal entry", id)
		},
	}
	return cmd
}

func newJournalShowCmd() *cobra.Command {
	var index int

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show a journal entry (default the latest)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			s, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			if cmd.Flags().Changed("index") {
				s.svc.SeekJournal(index - 1)
			} else {
				_, total := s.svc.JournalPosition()
				s.svc.SeekJournal(total - 1)
			}
			w := cmd.OutOrStdout()
			j, ok := s.svc.CurrentJournal()
			if !ok {
				fmt.Fprintln(w, ui.Muted.Render("(no journal entries)"))
				return nil
			}
			i, total := s.svc.JournalPosition()
			fmt.Fprintln(w, ui.Heading(ui.IconJournal, fmt.Sprintf("Journal %s", j.Date)))
			fmt.Fprintln(w, ui.Muted.Render(fmt.Sprintf("entry %d of %d, id %d", i+1, total, j.ID)))
			printJournal(w, j)
			fmt.Fprintf(w, "\n%s  %s\n", ui.Locked("--index "+fmt.Sprint(i), s.svc.HasPrevJournal()), ui.Locked("--index "+fmt.Sprint(i+2), s.svc.HasNextJournal()))
			return nil
		},
	}

	cmd.Flags().IntVarP(&index, "index", "n", 0, "1-based position of the entry (clamped)")
	return cmd
}

func newJournalListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List journal entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			s, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			w := cmd.OutOrStdout()
			journals := s.svc.Journals()
			if len(journals) == 0 {
				fmt.Fprintln(w, ui.Muted.Render("(no journal entries)"))
				return nil
			}
			for i, j := range journals {
				fmt.Fprintf(w, "%d. %s %s %s\n", i+1, ui.Key.Render(j.ID.String()), j.Date, ui.Muted.Render(j.Feel))
			}
			return nil
		},
	}
	return cmd
}

func printJournal(w io.Writer, j engine.Journal) {
	fmt.Fprintln(w, ui.LabelValue("Worked well", j.WorkedWell))
	fmt.Fprintln(w, ui.LabelValue("Didn't work", j.DidntWork))
	fmt.Fprintln(w, ui.LabelValue("Needs adjustment", j.NeedsAdjustment))
	fmt.Fprintln(w, ui.LabelValue("Feel", j.Feel))
}
