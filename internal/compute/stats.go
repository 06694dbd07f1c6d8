package compute

import (
	"sort"

	"github.com/gradebook/gradebook/internal/roster"
)

// Scores is the read-only view of a roster the core needs.
// *roster.Roster satisfies it.
type Scores interface {
	Len() int
	Records() []roster.Record
}

// Extreme is a highest or lowest score and the student who holds it.
// Name is empty only for an empty input.
type Extreme struct {
	Score float64
	Name  string
}

// Stats is the descriptive statistics bundle for one run.
type Stats struct {
	Count  int
	Mean   float64
	Median float64
	Max    Extreme
	Min    Extreme
}

// Statistics computes mean, median and both extremes over r.
//
// Ties for max or min go to the first record in roster order. An empty input
// returns the zero Stats; callers are expected not to pass one.
func Statistics(r Scores) Stats {
	recs := r.Records()
	if len(recs) == 0 {
		return Stats{}
	}

	st := Stats{
		Count: len(recs),
		Max:   Extreme{Score: recs[0].Score, Name: recs[0].Name},
		Min:   Extreme{Score: recs[0].Score, Name: recs[0].Name},
	}

	var sum float64
	values := make([]float64, len(recs))
	for i, rec := range recs {
		sum += rec.Score
		values[i] = rec.Score
		if rec.Score > st.Max.Score {
			st.Max = Extreme{Score: rec.Score, Name: rec.Name}
		}
		if rec.Score < st.Min.Score {
			st.Min = Extreme{Score: rec.Score, Name: rec.Name}
		}
	}

	st.Mean = sum / float64(len(recs))
	st.Median = median(values)
	return st
}

// median sorts values in place and returns the middle value, or the mean of
// the two middle values for an even count.
func median(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}
	sort.Float64s(values)
	mid := n / 2
	if n%2 == 1 {
		return values[mid]
	}
	return (values[mid-1] + values[mid]) / 2
}
