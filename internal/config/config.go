package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	DefaultConfigDirName  = "qlos"
	DefaultConfigFileName = "config.toml"

	DefaultLogLevel     = "warn"
	DefaultStreakMode   = "counter"
	DefaultWeeklyRepeat = "every-run"
)

type Config struct {
	// DBPath is empty unless the user pins the database location.
	DBPath   string `toml:"db_path"`
	LogLevel string `toml:"log_level"`
	// StreakMode is "counter" (increment/decrement on toggle) or "derived"
	// (count of checked cells).
	StreakMode string `toml:"streak_mode"`
	// WeeklyRepeat is "every-run" or "once-per-day".
	WeeklyRepeat   string `toml:"weekly_repeat"`
	ConfirmDeletes bool   `toml:"confirm_deletes"`
}

// ResolveConfigPath returns $XDG_CONFIG_HOME/qlos/config.toml, falling back to
// ~/.config/qlos/config.toml and finally to the working directory.
func ResolveConfigPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, DefaultConfigDirName, DefaultConfigFileName)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config", DefaultConfigDirName, DefaultConfigFileName)
	}
	return DefaultConfigFileName
}

// LoadOrCreate reads the config at path, writing the defaults there first if
// the file does not exist yet.
func LoadOrCreate(path string) (Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.fillDefaults()
	return cfg, nil
}

func (c *Config) fillDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.StreakMode == "" {
		c.StreakMode = DefaultStreakMode
	}
	if c.WeeklyRepeat == "" {
		c.WeeklyRepeat = DefaultWeeklyRepeat
	}
}

func write(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func Default() Config {
	return Config{
		LogLevel:       DefaultLogLevel,
		StreakMode:     DefaultStreakMode,
		WeeklyRepeat:   DefaultWeeklyRepeat,
		ConfirmDeletes: true,
	}
}
