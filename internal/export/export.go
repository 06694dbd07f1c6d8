package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gradebook/gradebook/internal/compute"
)

// Format selects the export encoding.
type Format string

// Supported export formats.
const (
	FormatCSV  Format = "csv"
	FormatProm Format = "prom"
)

// Header is the fixed first row of a CSV export.
var Header = []string{"Student Name", "Marks", "Grade"}

// Export errors.
var (
	ErrEmptyFilename = errors.New("export: filename cannot be empty")
	ErrFileExists    = errors.New("export: file already exists")
	ErrUnknownFormat = errors.New("export: unknown format")
)

// ParseFormat validates a format name. Matching is case-insensitive.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCSV, FormatProm:
		return f, nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownFormat, s)
	}
}

// Ext returns the file extension for f, including the dot.
func (f Format) Ext() string {
	return "." + string(f)
}

// Filename turns user input into an export filename: surrounding whitespace
// is trimmed and the format's extension is appended when missing.
func Filename(raw string, f Format) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", ErrEmptyFilename
	}
	if !strings.EqualFold(filepath.Ext(name), f.Ext()) {
		name += f.Ext()
	}
	return name, nil
}

// Resolve places a relative name inside dir. Absolute names are kept as-is.
func Resolve(dir, name string) string {
	if filepath.IsAbs(name) || dir == "" {
		return name
	}
	return filepath.Join(dir, name)
}

// Exists reports whether path already exists.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Write encodes res to w in format f.
func Write(w io.Writer, f Format, res *compute.Result) error {
	switch f {
	case FormatCSV:
		return WriteCSV(w, res)
	case FormatProm:
		return WritePrometheus(w, res)
	default:
		return fmt.Errorf("%w %q", ErrUnknownFormat, f)
	}
}

// WriteCSV writes the results table, one row per student sorted by name.
func WriteCSV(w io.Writer, res *compute.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("export: write header: %w", err)
	}
	for _, g := range res.Grades.SortedByName() {
		row := []string{g.Name, strconv.FormatFloat(g.Score, 'f', -1, 64), g.Grade.String()}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("export: write row %q: %w", g.Name, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("export: flush: %w", err)
	}
	return nil
}

// ToFile writes res to path. An existing file is only replaced when overwrite
// is true; otherwise ErrFileExists is returned and nothing is written.
func ToFile(path string, f Format, res *compute.Result, overwrite bool) error {
	if !overwrite && Exists(path) {
		return fmt.Errorf("%w: %s", ErrFileExists, path)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".gradebook-export-*")
	if err != nil {
		return fmt.Errorf("export: create temp file: %w", err)
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename

	if err := Write(tmp, f, res); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("export: close temp file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("export: chmod: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("export: rename into place: %w", err)
	}
	return nil
}
