package ingest

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// LoadWorkbook imports the first sheet of an .xlsx workbook. The first row is
// the header, exactly as for delimited files.
func LoadWorkbook(path string, aliases Aliases) (*Load, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("ingest: open workbook %q: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyFile
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("ingest: read sheet %q: %w", sheets[0], err)
	}
	return fromRows(rows, aliases)
}
