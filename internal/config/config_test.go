package config

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestLoad_Valid(t *testing.T) {
	yaml := `
log:
  level: debug
  format: json
ingest:
  name_aliases: [Pupil, name]
  score_aliases: [Points]
export:
  dir: /tmp/out
  format: prom
report:
  color: false
`
	cfg := loadFromString(t, yaml)

	if cfg.Log.Level != "debug" {
		t.Errorf("log.level: got %q", cfg.Log.Level)
	}
	if cfg.Log.Format != "json" {
		t.Errorf("log.format: got %q", cfg.Log.Format)
	}
	if !reflect.DeepEqual(cfg.Ingest.NameAliases, []string{"pupil", "name"}) {
		t.Errorf("name_aliases: got %v (aliases should be lower-cased)", cfg.Ingest.NameAliases)
	}
	if !reflect.DeepEqual(cfg.Ingest.ScoreAliases, []string{"points"}) {
		t.Errorf("score_aliases: got %v", cfg.Ingest.ScoreAliases)
	}
	if cfg.Export.Dir != "/tmp/out" || cfg.Export.Format != "prom" {
		t.Errorf("export: got %+v", cfg.Export)
	}
	if cfg.Report.Color {
		t.Error("report.color: got true, want false")
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg := loadFromString(t, "log:\n  level: info\n")

	if cfg.Log.Format != DefaultLogFormat {
		t.Errorf("default log.format: got %q, want %q", cfg.Log.Format, DefaultLogFormat)
	}
	if cfg.Export.Format != DefaultExportFormat {
		t.Errorf("default export.format: got %q, want %q", cfg.Export.Format, DefaultExportFormat)
	}
	if cfg.Export.Dir != DefaultExportDir {
		t.Errorf("default export.dir: got %q", cfg.Export.Dir)
	}
	if !reflect.DeepEqual(cfg.Ingest.NameAliases, DefaultNameAliases) {
		t.Errorf("default name_aliases: got %v", cfg.Ingest.NameAliases)
	}
	if !reflect.DeepEqual(cfg.Ingest.ScoreAliases, DefaultScoreAliases) {
		t.Errorf("default score_aliases: got %v", cfg.Ingest.ScoreAliases)
	}
	if !cfg.Report.Color {
		t.Error("default report.color: got false, want true")
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown log level", "log:\n  level: loud\n"},
		{"unknown log format", "log:\n  format: xml\n"},
		{"unknown export format", "export:\n  format: xlsx\n"},
		{"empty name aliases", "ingest:\n  name_aliases: [\" \"]\n"},
		{"empty score aliases", "ingest:\n  score_aliases: []\n"},
		{"malformed yaml", "log: [unterminated\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := loadStringErr(t, tc.yaml); err == nil {
				t.Fatal("expected error, got nil")
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("err = %v, want fs.ErrNotExist", err)
	}
}

func TestLoadOptional_MissingFileGivesDefaults(t *testing.T) {
	cfg, err := LoadOptional(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadOptional() unexpected error: %v", err)
	}
	if cfg.Log.Level != DefaultLogLevel {
		t.Errorf("log.level: got %q, want %q", cfg.Log.Level, DefaultLogLevel)
	}
}

func TestLoadOptional_BadFileStillFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("export:\n  format: pdf\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadOptional(path); err == nil {
		t.Fatal("expected validation error, got nil")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv(EnvLogLevel, "ERROR")
	t.Setenv(EnvLogFormat, "json")
	t.Setenv(EnvExportDir, "/exports")
	t.Setenv(EnvExportFmt, "prom")
	t.Setenv(EnvNoColor, "1")

	cfg := loadFromString(t, "log:\n  level: debug\n")

	if cfg.Log.Level != "error" {
		t.Errorf("log.level: got %q, want error", cfg.Log.Level)
	}
	if cfg.Log.Format != "json" {
		t.Errorf("log.format: got %q, want json", cfg.Log.Format)
	}
	if cfg.Export.Dir != "/exports" || cfg.Export.Format != "prom" {
		t.Errorf("export: got %+v", cfg.Export)
	}
	if cfg.Report.Color {
		t.Error("report.color should be disabled by GRADEBOOK_NO_COLOR")
	}
}

func TestLoadEnv_ReadsDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("GRADEBOOK_TEST_DOTENV=from-file\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Unsetenv("GRADEBOOK_TEST_DOTENV") })

	LoadEnv(path)
	if got := os.Getenv("GRADEBOOK_TEST_DOTENV"); got != "from-file" {
		t.Errorf("GRADEBOOK_TEST_DOTENV = %q, want from-file", got)
	}
}

func TestLoadEnv_MissingFileIgnored(t *testing.T) {
	LoadEnv(filepath.Join(t.TempDir(), "absent.env")) // must not panic
}

// --- Watch ---

func TestWatch_ReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gradebook.yaml")
	if err := os.WriteFile(path, []byte("log:\n  level: info\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan *Config, 4)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, zerolog.Nop(), func(c *Config) {
			select {
			case got <- c:
			default:
			}
		})
	}()

	// Give the watcher a moment to register before writing.
	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(path, []byte("log:\n  level: debug\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	// A truncate-then-write may surface as two events; wait for the final content.
	deadline := time.After(5 * time.Second)
	for reloaded := false; !reloaded; {
		select {
		case c := <-got:
			reloaded = c.Log.Level == "debug"
		case <-deadline:
			t.Fatal("timed out waiting for reload with log.level=debug")
		}
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Watch() returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Watch() did not return after cancel")
	}
}

func TestWatch_MissingFile(t *testing.T) {
	err := Watch(context.Background(), filepath.Join(t.TempDir(), "nope.yaml"), zerolog.Nop(), func(*Config) {})
	if err == nil {
		t.Fatal("expected error for missing file, got nil")
	}
}

// loadFromString writes yaml to a temp file and calls Load, failing on error.
func loadFromString(t *testing.T, content string) *Config {
	t.Helper()
	cfg, err := loadStringErr(t, content)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	return cfg
}

// loadStringErr writes yaml to a temp file and calls Load, returning any error.
func loadStringErr(t *testing.T, content string) (*Config, error) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	return Load(path)
}
