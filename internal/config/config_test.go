package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("WAKUTORE_DB", "")
	t.Setenv("WAKUTORE_LOG_LEVEL", "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.TickInterval != time.Second || cfg.AutosaveInterval != 30*time.Second {
		t.Fatalf("intervals = %v / %v", cfg.TickInterval, cfg.AutosaveInterval)
	}
	if !strings.HasSuffix(cfg.DBPath, filepath.Join("wakutore", "wakutore.db")) {
		t.Fatalf("db path = %q", cfg.DBPath)
	}
}

func TestLoadYAML(t *testing.T) {
	t.Setenv("WAKUTORE_DB", "")
	t.Setenv("WAKUTORE_LOG_LEVEL", "")
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
db_path: /tmp/w.db
tick_interval: 500ms
autosave_interval: 1m
seed: 42
logging:
  level: debug
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DBPath != "/tmp/w.db" || cfg.TickInterval != 500*time.Millisecond ||
		cfg.AutosaveInterval != time.Minute || cfg.Seed != 42 || cfg.Logging.Level != "debug" {
		t.Fatalf("cfg = %+v", cfg)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("WAKUTORE_DB", "/env/w.db")
	t.Setenv("WAKUTORE_LOG_LEVEL", "warn")
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DBPath != "/env/w.db" || cfg.Logging.Level != "warn" {
		t.Fatalf("cfg = %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		mut  func(*Config)
	}{
		{"empty db", func(c *Config) { c.DBPath = "" }},
		{"zero tick", func(c *Config) { c.TickInterval = 0 }},
		{"autosave too short", func(c *Config) { c.AutosaveInterval = time.Millisecond }},
		{"bad level", func(c *Config) { c.Logging.Level = "loud" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.DBPath = "/tmp/x.db"
			tt.mut(cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	t.Setenv("WAKUTORE_DB", "")
	t.Setenv("WAKUTORE_LOG_LEVEL", "")
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")
	cfg := Default()
	cfg.DBPath = "/tmp/round.db"
	cfg.TickInterval = 2 * time.Second
	if err := cfg.Save(path); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.DBPath != cfg.DBPath || got.TickInterval != cfg.TickInterval {
		t.Fatalf("got %+v", got)
	}
}

func TestLoadBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	os.WriteFile(path, []byte("tick_interval: [nope"), 0o644)
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}
