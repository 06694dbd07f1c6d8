package compute

import (
	"sort"

	"github.com/gradebook/gradebook/pkg/types"
)

// Lower bounds of the grade bands. Anything below ThresholdD is an F.
const (
	ThresholdA = 90.0
	ThresholdB = 80.0
	ThresholdC = 70.0
	ThresholdD = 60.0
)

// Graded is one student's score together with the letter it earned.
type Graded struct {
	Name  string
	Score float64
	Grade types.Grade
}

// Grades is the per-student grade mapping for one run, in roster order.
type Grades struct {
	entries []Graded
	index   map[string]int
}

// AssignGrade maps a score to its letter grade. Bands are evaluated high to
// low and are inclusive at their lower bound.
func AssignGrade(score float64) types.Grade {
	switch {
	case score >= ThresholdA:
		return types.GradeA
	case score >= ThresholdB:
		return types.GradeB
	case score >= ThresholdC:
		return types.GradeC
	case score >= ThresholdD:
		return types.GradeD
	default:
		return types.GradeF
	}
}

// AssignGrades grades every record, keeping roster order.
func AssignGrades(r Scores) Grades {
	recs := r.Records()
	g := Grades{
		entries: make([]Graded, 0, len(recs)),
		index:   make(map[string]int, len(recs)),
	}
	for _, rec := range recs {
		g.index[rec.Name] = len(g.entries)
		g.entries = append(g.entries, Graded{
			Name:  rec.Name,
			Score: rec.Score,
			Grade: AssignGrade(rec.Score),
		})
	}
	return g
}

// Len returns the number of graded students.
func (g Grades) Len() int { return len(g.entries) }

// Of returns the grade of name.
func (g Grades) Of(name string) (types.Grade, bool) {
	i, ok := g.index[name]
	if !ok {
		return "", false
	}
	return g.entries[i].Grade, true
}

// All returns a copy of every graded entry in roster order.
func (g Grades) All() []Graded {
	out := make([]Graded, len(g.entries))
	copy(out, g.entries)
	return out
}

// SortedByName returns a copy of every graded entry ordered by name, the
// order used for presentation.
func (g Grades) SortedByName() []Graded {
	out := g.All()
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
