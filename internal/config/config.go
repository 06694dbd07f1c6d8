package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Default values applied when fields are absent from the config file.
const (
	DefaultConfigPath   = "gradebook.yaml"
	DefaultLogLevel     = "warn"
	DefaultLogFormat    = "pretty"
	DefaultExportFormat = "csv"
	DefaultExportDir    = "."
)

// Environment variables that override file values.
const (
	EnvLogLevel  = "GRADEBOOK_LOG_LEVEL"
	EnvLogFormat = "GRADEBOOK_LOG_FORMAT"
	EnvExportDir = "GRADEBOOK_EXPORT_DIR"
	EnvExportFmt = "GRADEBOOK_EXPORT_FORMAT"
	EnvNoColor   = "GRADEBOOK_NO_COLOR"
)

// DefaultNameAliases and DefaultScoreAliases are the header names recognised
// when nothing is configured. Matching is case-insensitive.
var (
	DefaultNameAliases  = []string{"name", "student", "student_name"}
	DefaultScoreAliases = []string{"marks", "score", "grade"}
)

// Config is the top-level gradebook configuration.
// Fields map 1:1 to gradebook.example.yaml.
type Config struct {
	Log    LogConfig    `yaml:"log"`
	Ingest IngestConfig `yaml:"ingest"`
	Export ExportConfig `yaml:"export"`
	Report ReportConfig `yaml:"report"`
}

// LogConfig controls the zerolog logger.
type LogConfig struct {
	// Level is one of: trace | debug | info | warn | error | disabled.
	Level string `yaml:"level"`

	// Format is "pretty" for console output or "json".
	Format string `yaml:"format"`
}

// IngestConfig holds the header alias table for file imports.
type IngestConfig struct {
	// NameAliases are header names accepted for the student name column.
	NameAliases []string `yaml:"name_aliases"`

	// ScoreAliases are header names accepted for the score column.
	ScoreAliases []string `yaml:"score_aliases"`
}

// ExportConfig controls where and how results are exported.
type ExportConfig struct {
	// Dir is prepended to relative export filenames.
	Dir string `yaml:"dir"`

	// Format is csv | prom.
	Format string `yaml:"format"`
}

// ReportConfig controls console rendering.
type ReportConfig struct {
	// Color enables coloured headings and marks when stdout is a terminal.
	Color bool `yaml:"color"`
}

// LoadEnv reads .env files into the process environment. Missing files are
// ignored; variables already set are not overwritten.
func LoadEnv(files ...string) {
	_ = godotenv.Load(files...) // .env is optional
}

// Load reads and parses the YAML config file at path.
// Missing optional fields are filled with defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read file: %w", err)
	}
	return parse(data)
}

// LoadOptional behaves like Load but returns the defaults (plus environment
// overrides) when path does not exist.
func LoadOptional(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return parse(nil)
	}
	return cfg, err
}

func parse(data []byte) (*Config, error) {
	cfg := defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}
	applyEnv(cfg)
	normalize(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// defaults returns a Config pre-populated with default values.
func defaults() *Config {
	return &Config{
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
		Ingest: IngestConfig{
			NameAliases:  append([]string(nil), DefaultNameAliases...),
			ScoreAliases: append([]string(nil), DefaultScoreAliases...),
		},
		Export: ExportConfig{
			Dir:    DefaultExportDir,
			Format: DefaultExportFormat,
		},
		Report: ReportConfig{Color: true},
	}
}

// applyEnv overlays GRADEBOOK_* variables on top of file values.
func applyEnv(cfg *Config) {
	cfg.Log.Level = getEnv(EnvLogLevel, cfg.Log.Level)
	cfg.Log.Format = getEnv(EnvLogFormat, cfg.Log.Format)
	cfg.Export.Dir = getEnv(EnvExportDir, cfg.Export.Dir)
	cfg.Export.Format = getEnv(EnvExportFmt, cfg.Export.Format)
	if v := os.Getenv(EnvNoColor); v != "" {
		if off, err := strconv.ParseBool(v); err == nil && off {
			cfg.Report.Color = false
		}
	}
}

// normalize lower-cases enums and aliases and drops blank aliases.
func normalize(cfg *Config) {
	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))
	cfg.Log.Format = strings.ToLower(strings.TrimSpace(cfg.Log.Format))
	cfg.Export.Format = strings.ToLower(strings.TrimSpace(cfg.Export.Format))
	cfg.Ingest.NameAliases = cleanAliases(cfg.Ingest.NameAliases)
	cfg.Ingest.ScoreAliases = cleanAliases(cfg.Ingest.ScoreAliases)
}

func cleanAliases(in []string) []string {
	out := make([]string, 0, len(in))
	for _, a := range in {
		if a = strings.ToLower(strings.TrimSpace(a)); a != "" {
			out = append(out, a)
		}
	}
	return out
}

// validate checks enums and structural constraints.
func validate(cfg *Config) error {
	switch cfg.Log.Level {
	case "trace", "debug", "info", "warn", "error", "fatal", "panic", "disabled":
	default:
		return fmt.Errorf("log.level: unknown level %q", cfg.Log.Level)
	}
	switch cfg.Log.Format {
	case "json", "pretty":
	default:
		return fmt.Errorf("log.format: unknown format %q", cfg.Log.Format)
	}
	switch cfg.Export.Format {
	case "csv", "prom":
	default:
		return fmt.Errorf("export.format: unknown format %q", cfg.Export.Format)
	}
	if len(cfg.Ingest.NameAliases) == 0 {
		return fmt.Errorf("ingest.name_aliases must not be empty")
	}
	if len(cfg.Ingest.ScoreAliases) == 0 {
		return fmt.Errorf("ingest.score_aliases must not be empty")
	}
	if cfg.Export.Dir == "" {
		return fmt.Errorf("export.dir must not be empty")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
