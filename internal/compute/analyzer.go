package compute

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Valid score range, inclusive at both ends.
const (
	MinScore = 0.0
	MaxScore = 100.0
)

// ErrEmptyRoster is returned by Analyze when there is nothing to analyse.
var ErrEmptyRoster = errors.New("compute: no student records to analyse")

// InvalidScoreError reports a record whose score lies outside [MinScore, MaxScore]
// or is not a number.
type InvalidScoreError struct {
	Name  string
	Score float64
}

func (e *InvalidScoreError) Error() string {
	return fmt.Sprintf("compute: score %v for %q is outside %g–%g", e.Score, e.Name, MinScore, MaxScore)
}

// Result is the full output of one analysis run, ready to be handed to the
// report and export layers. Nothing in it is mutated after Analyze returns.
type Result struct {
	RunID        string
	AnalyzedAt   time.Time
	Stats        Stats
	Grades       Grades
	Distribution Distribution
	Split        Split
}

// Analyzer runs the analysis pipeline. It holds no per-run state, so one
// Analyzer can serve any number of runs.
type Analyzer struct {
	log   zerolog.Logger
	now   func() time.Time // injectable for deterministic tests
	newID func() string
}

// NewAnalyzer returns an Analyzer that logs through log.
func NewAnalyzer(log zerolog.Logger) *Analyzer {
	return &Analyzer{
		log:   log.With().Str("component", "compute").Logger(),
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// Analyze validates r and runs all four components over it.
//
// Grades feed the distribution; statistics and the pass/fail split are
// computed straight from the roster.
func (a *Analyzer) Analyze(r Scores) (*Result, error) {
	if r == nil || r.Len() == 0 {
		return nil, ErrEmptyRoster
	}
	for _, rec := range r.Records() {
		if math.IsNaN(rec.Score) || rec.Score < MinScore || rec.Score > MaxScore {
			return nil, &InvalidScoreError{Name: rec.Name, Score: rec.Score}
		}
	}

	grades := AssignGrades(r)
	res := &Result{
		RunID:        a.newID(),
		AnalyzedAt:   a.now().UTC(),
		Stats:        Statistics(r),
		Grades:       grades,
		Distribution: Tally(grades),
		Split:        PassFail(r),
	}

	a.log.Info().
		Str("run_id", res.RunID).
		Int("students", res.Stats.Count).
		Float64("mean", res.Stats.Mean).
		Float64("median", res.Stats.Median).
		Int("passed", len(res.Split.Passed)).
		Int("failed", len(res.Split.Failed)).
		Msg("analysis complete")

	return res, nil
}
