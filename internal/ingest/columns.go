package ingest

import (
	"errors"
	"strings"

	"github.com/gradebook/gradebook/internal/config"
)

// ErrTooFewColumns is returned when the header cannot provide both a name
// and a score column.
var ErrTooFewColumns = errors.New("ingest: need at least 2 columns (name and marks)")

// Aliases is the header alias table consulted once per import.
type Aliases struct {
	Name  []string
	Score []string
}

// DefaultAliases returns the built-in alias table.
func DefaultAliases() Aliases {
	return Aliases{
		Name:  append([]string(nil), config.DefaultNameAliases...),
		Score: append([]string(nil), config.DefaultScoreAliases...),
	}
}

// AliasesFrom returns the alias table configured in cfg.
func AliasesFrom(cfg config.IngestConfig) Aliases {
	return Aliases{Name: cfg.NameAliases, Score: cfg.ScoreAliases}
}

// columns locates the name and score columns in header.
//
// An alias match wins; otherwise the name falls back to the first column not
// taken by the score, and the score to the first column not taken by the name.
func (a Aliases) columns(header []string) (nameIdx, scoreIdx int, err error) {
	nameIdx = matchAlias(header, a.Name, -1)
	scoreIdx = matchAlias(header, a.Score, nameIdx)

	if nameIdx < 0 {
		nameIdx = firstFree(len(header), scoreIdx)
	}
	if scoreIdx < 0 {
		scoreIdx = firstFree(len(header), nameIdx)
	}
	if nameIdx < 0 || scoreIdx < 0 {
		return -1, -1, ErrTooFewColumns
	}
	return nameIdx, scoreIdx, nil
}

// matchAlias returns the index of the first header cell found in aliases,
// skipping the column at skip.
func matchAlias(header, aliases []string, skip int) int {
	for i, h := range header {
		if i == skip {
			continue
		}
		h = strings.ToLower(strings.TrimSpace(h))
		for _, a := range aliases {
			if h == strings.ToLower(a) {
				return i
			}
		}
	}
	return -1
}

// firstFree returns the lowest column index below n other than taken, or -1.
func firstFree(n, taken int) int {
	for i := 0; i < n; i++ {
		if i != taken {
			return i
		}
	}
	return -1
}
