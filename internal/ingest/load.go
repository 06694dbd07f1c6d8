package ingest

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gradebook/gradebook/internal/roster"
)

// Import errors. Missing files surface as a wrapped fs.ErrNotExist.
var (
	ErrEmptyFile = errors.New("ingest: file is empty")
	ErrNoRecords = errors.New("ingest: no valid student records found")
)

// candidateDelimiters are tried, in order, against the header line.
var candidateDelimiters = []rune{',', ';', '\t', '|'}

// utf8BOM is stripped from the start of delimited input.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Load is the outcome of one file import.
type Load struct {
	Roster    *roster.Roster
	Skipped   int    // data rows dropped for a bad name or score
	NameCol   string // header of the column used for names
	ScoreCol  string // header of the column used for scores
	Delimiter rune   // 0 for workbook imports
}

// LoadFile imports path, dispatching on its extension: .xlsx is read as a
// workbook, anything else as delimited text.
func LoadFile(path string, aliases Aliases) (*Load, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return LoadWorkbook(path, aliases)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ingest: open %q: %w", path, err)
	}
	defer f.Close()

	return LoadDelimited(f, aliases)
}

// LoadDelimited reads delimited text from r. The delimiter is detected from
// the header line.
func LoadDelimited(r io.Reader, aliases Aliases) (*Load, error) {
	data, err := io.ReadAll(bufio.NewReader(r))
	if err != nil {
		return nil, fmt.Errorf("ingest: read: %w", err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyFile
	}

	delim := detectDelimiter(data)
	cr := csv.NewReader(bytes.NewReader(data))
	cr.Comma = delim
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = delim != '\t'
	cr.LazyQuotes = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("ingest: parse delimited: %w", err)
	}

	ld, err := fromRows(rows, aliases)
	if err != nil {
		return nil, err
	}
	ld.Delimiter = delim
	return ld, nil
}

// detectDelimiter returns the candidate occurring most often outside quotes on
// the first line, or ',' when none occurs.
func detectDelimiter(data []byte) rune {
	line := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		line = data[:i]
	}

	counts := make(map[rune]int, len(candidateDelimiters))
	quoted := false
	for _, c := range string(line) {
		if c == '"' {
			quoted = !quoted
			continue
		}
		if !quoted {
			counts[c]++
		}
	}

	best, bestCount := ',', 0
	for _, d := range candidateDelimiters {
		if n := counts[d]; n > bestCount {
			best, bestCount = d, n
		}
	}
	return best
}

// fromRows builds a roster from a header row followed by data rows.
func fromRows(rows [][]string, aliases Aliases) (*Load, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyFile
	}

	header := rows[0]
	nameIdx, scoreIdx, err := aliases.columns(header)
	if err != nil {
		return nil, err
	}

	ld := &Load{
		Roster:   roster.New(),
		NameCol:  strings.TrimSpace(header[nameIdx]),
		ScoreCol: strings.TrimSpace(header[scoreIdx]),
	}
	for _, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		if nameIdx >= len(row) || scoreIdx >= len(row) {
			ld.Skipped++
			continue
		}
		name := strings.TrimSpace(row[nameIdx])
		score, err := ParseScore(row[scoreIdx])
		if err != nil || ValidateRecord(name, score) != nil {
			ld.Skipped++
			continue
		}
		ld.Roster.Put(name, score)
	}

	if ld.Roster.Len() == 0 {
		return nil, ErrNoRecords
	}
	return ld, nil
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
