package root

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/Brooklss/Quarterly-Life-OS/internal/config"
	"github.com/Brooklss/Quarterly-Life-OS/internal/engine"
	"github.com/Brooklss/Quarterly-Life-OS/internal/logging"
	"github.com/Brooklss/Quarterly-Life-OS/internal/storage"
	"github.com/Brooklss/Quarterly-Life-OS/internal/ui"
)

// session is everything a command needs: the loaded service plus the config
// it was built from.
type session struct {
	svc    *engine.Service
	report engine.RunReport
	cfg    config.Config
	logger *log.Logger
	db     *sql.DB
}

func (s *session) Close() {
	_ = s.db.Close()
}

func loadConfig() (config.Config, error) {
	path := flags.configPath
	if path == "" {
		path = config.ResolveConfigPath()
	}
	return config.LoadOrCreate(path)
}

// dbPathFor applies the lookup order --db, QLOS_DB, config, default.
func dbPathFor(cfg config.Config) (string, error) {
	explicit := flags.dbPath
	if explicit == "" && os.Getenv(storage.EnvDBPath) == "" {
		explicit = cfg.DBPath
	}
	return storage.ResolveDBPath(explicit)
}

func openDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	path, err := dbPathFor(cfg)
	if err != nil {
		return nil, err
	}
	return storage.Open(ctx, path)
}

// openSession loads config, opens the store and runs Load for the quarter
// selected by --year/--quarter, or the current one.
func openSession(ctx context.Context) (*session, error) {
	return openSessionAt(ctx, flags.year, flags.quarter)
}

// openSessionAt is openSession with an explicit period; zero keeps the
// current year or quarter. The store is loaded exactly once.
func openSessionAt(ctx context.Context, year, quarter int) (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	level := cfg.LogLevel
	if flags.logLevel != "" {
		level = flags.logLevel
	}
	logger := logging.New(os.Stderr, level)

	mode, err := engine.ParseStreakMode(cfg.StreakMode)
	if err != nil {
		return nil, fmt.Errorf("config streak_mode: %w", err)
	}
	policy, err := engine.ParseWeeklyRepeatPolicy(cfg.WeeklyRepeat)
	if err != nil {
		return nil, fmt.Errorf("config weekly_repeat: %w", err)
	}

	db, err := openDB(ctx, cfg)
	if err != nil {
		return nil, err
	}
	svc := engine.NewService(db, engine.Options{
		StreakMode:   mode,
		WeeklyRepeat: policy,
		Logger:       logger,
	})

	var rep engine.RunReport
	if year != 0 || quarter != 0 {
		if year == 0 {
			year = svc.Year()
		}
		if quarter == 0 {
			quarter = svc.Quarter()
		}
		rep, err = svc.SetPeriod(ctx, year, quarter)
	} else {
		rep, err = svc.Load(ctx)
	}
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &session{svc: svc, report: rep, cfg: cfg, logger: logger, db: db}, nil
}

// confirm asks on the command's input unless --yes is set or the config
// turns confirmations off.
func (s *session) confirm(cmd *cobra.Command) engine.ConfirmFunc {
	if flags.yes || !s.cfg.ConfirmDeletes {
		return nil
	}
	in := bufio.NewReader(cmd.InOrStdin())
	return func(message string) bool {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s %s [y/N] ", ui.IconWarn, message)
		line, _ := in.ReadString('\n')
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true
		default:
			return false
		}
	}
}

func parseID(arg string) (engine.ID, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
	if err != nil {
		return 0, errors.New("id must be an integer")
	}
	return engine.ID(n), nil
}

func idArg(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return errors.New("id is required")
	}
	_, err := parseID(args[0])
	return err
}

// reportMissing prints the no-op notice for an unknown id.
func reportMissing(cmd *cobra.Command, kind string, id engine.ID) {
	fmt.Fprintln(cmd.OutOrStdout(), ui.Warn.Render(fmt.Sprintf("%s No %s with id %d; nothing changed.", ui.IconInfo, kind, id)))
}

func parseRepeatFlags(repeat, days string) (engine.Repeat, []int, error) {
	r, err := engine.ParseRepeat(repeat)
	if err != nil {
		return "", nil, err
	}
	var d []int
	if strings.TrimSpace(days) != "" {
		if d, err = engine.ParseWeekdays(days); err != nil {
			return "", nil, err
		}
		if r == engine.RepeatNone {
			r = engine.RepeatCustom
		}
	}
	return r, d, nil
}
