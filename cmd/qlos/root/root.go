package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Brooklss/Quarterly-Life-OS/internal/ui"
)

const Version = "0.1.0"

type globalFlags struct {
	configPath string
	dbPath     string
	logLevel   string
	year       int
	quarter    int
	yes        bool
}

var flags globalFlags

var rootCmd = &cobra.Command{
	Use:           "qlos",
	Short:         "Quarterly Life OS, a local-first quarterly habit tracker",
	Long:          "Quarterly Life OS tracks habits on a quarter grid, daily and weekly todos with repetition, quarterly goals and weekly journals.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/qlos/config.toml)")
	pf.StringVar(&flags.dbPath, "db", "", "Database path (overrides QLOS_DB and the config)")
	pf.StringVar(&flags.logLevel, "log-level", "", "Log level (debug|info|warn|error)")
	pf.IntVar(&flags.year, "year", 0, "Select a year instead of the current one")
	pf.IntVar(&flags.quarter, "quarter", 0, "Select a quarter (1-4) instead of the current one")
	pf.BoolVarP(&flags.yes, "yes", "y", false, "Do not ask before deleting")

	rootCmd.AddCommand(
		newAddCmd(),
		newDoCmd(),
		newListCmd(),
		newStatusCmd(),
		newBoardCmd(),
		newSyncCmd(),
		newGridCmd(),
		newHabitCmd(),
		newTodoCmd(),
		newWeeklyCmd(),
		newGoalCmd(),
		newJournalCmd(),
		newExportCmd(),
		newImportCmd(),
		newThemeCmd(),
		newQuartersCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
