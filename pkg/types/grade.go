package types

// Grade is one of the five fixed letter grades.
type Grade string

// The fixed grade letters, best first.
const (
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
	GradeF Grade = "F"
)

// Grades lists every letter grade in report order (A first, F last).
var Grades = [...]Grade{GradeA, GradeB, GradeC, GradeD, GradeF}

// Index returns the position of g in Grades, or -1 for an unknown letter.
func (g Grade) Index() int {
	for i, v := range Grades {
		if v == g {
			return i
		}
	}
	return -1
}

func (g Grade) String() string { return string(g) }
