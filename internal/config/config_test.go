package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadOrCreateWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg, err := LoadOrCreate(path)
	if err != nil {
		t.Fatalf("LoadOrCreate: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("cfg=%+v, want defaults", cfg)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not written: %v", err)
	}

	again, err := LoadOrCreate(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if again != cfg {
		t.Fatalf("reloaded=%+v, want %+v", again, cfg)
	}
}

func TestLoadOrCreateFillsMissingKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := "db_path = \"/tmp/x.db\"\nstreak_mode = \"derived\"\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := LoadOrCreate(path)
	if err != nil {
		t.Fatalf("LoadOrCreate: %v", err)
	}
	if cfg.DBPath != "/tmp/x.db" {
		t.Fatalf("DBPath=%q", cfg.DBPath)
	}
	if cfg.StreakMode != "derived" {
		t.Fatalf("StreakMode=%q, want derived", cfg.StreakMode)
	}
	if cfg.WeeklyRepeat != DefaultWeeklyRepeat || cfg.LogLevel != DefaultLogLevel {
		t.Fatalf("defaults not filled: %+v", cfg)
	}
	if !cfg.ConfirmDeletes {
		t.Fatalf("ConfirmDeletes should keep its default when the key is absent")
	}
}

func TestLoadOrCreateRejectsBadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("db_path = ["), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadOrCreate(path); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestResolveConfigPathUsesXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	want := filepath.Join(dir, DefaultConfigDirName, DefaultConfigFileName)
	if got := ResolveConfigPath(); got != want {
		t.Fatalf("ResolveConfigPath()=%q, want %q", got, want)
	}
}
