package compute

import "github.com/gradebook/gradebook/pkg/types"

// Distribution holds the number of students per letter grade, indexed in
// types.Grades order. Every letter is always present.
type Distribution [len(types.Grades)]int

// Tally counts how many students hold each letter.
func Tally(g Grades) Distribution {
	var d Distribution
	for _, e := range g.entries {
		if i := e.Grade.Index(); i >= 0 {
			d[i]++
		}
	}
	return d
}

// Count returns the number of students holding grade.
func (d Distribution) Count(grade types.Grade) int {
	i := grade.Index()
	if i < 0 {
		return 0
	}
	return d[i]
}

// Total returns the sum of all counts.
func (d Distribution) Total() int {
	var n int
	for _, c := range d {
		n += c
	}
	return n
}

// Percent returns grade's share of the total in the range 0–100.
// An empty distribution yields 0 for every grade.
func (d Distribution) Percent(grade types.Grade) float64 {
	total := d.Total()
	if total == 0 {
		return 0
	}
	return float64(d.Count(grade)) / float64(total) * 100
}
