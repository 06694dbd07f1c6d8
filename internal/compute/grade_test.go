package compute

import (
	"math"
	"reflect"
	"testing"

	"github.com/gradebook/gradebook/internal/roster"
	"github.com/gradebook/gradebook/pkg/types"
)

// almostEqual returns true if a and b are within epsilon of each other.
func almostEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) < epsilon
}

// build returns a roster holding the given name/score pairs in order.
func build(pairs ...any) *roster.Roster {
	r := roster.New()
	for i := 0; i+1 < len(pairs); i += 2 {
		r.Put(pairs[i].(string), toFloat(pairs[i+1]))
	}
	return r
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case int:
		return float64(n)
	case float64:
		return n
	}
	panic("toFloat: unsupported type")
}

// --- AssignGrade() band boundaries ---

func TestAssignGrade_Bands(t *testing.T) {
	tests := []struct {
		score float64
		want  types.Grade
	}{
		{100, types.GradeA},
		{90, types.GradeA},
		{89.99, types.GradeB},
		{80, types.GradeB},
		{79.99, types.GradeC},
		{70, types.GradeC},
		{69.99, types.GradeD},
		{60, types.GradeD},
		{59.99, types.GradeF},
		{40, types.GradeF},
		{0, types.GradeF},
	}
	for _, tc := range tests {
		if got := AssignGrade(tc.score); got != tc.want {
			t.Errorf("AssignGrade(%v) = %q, want %q", tc.score, got, tc.want)
		}
	}
}

func TestAssignGrade_Monotonic(t *testing.T) {
	// Walking upward in 0.01 steps must never move to a worse letter.
	prev := AssignGrade(0).Index()
	for s := 0; s <= 10000; s++ {
		idx := AssignGrade(float64(s) / 100).Index()
		if idx > prev {
			t.Fatalf("grade got worse at score %.2f: index %d after %d", float64(s)/100, idx, prev)
		}
		prev = idx
	}
}

func TestAssignGrades_SameKeysAsInput(t *testing.T) {
	r := build("Alice", 95, "Bob", 82, "Carol", 71, "Dave", 55, "Eve", 38)
	g := AssignGrades(r)

	if g.Len() != r.Len() {
		t.Fatalf("Len() = %d, want %d", g.Len(), r.Len())
	}
	want := map[string]types.Grade{
		"Alice": types.GradeA, "Bob": types.GradeB, "Carol": types.GradeC,
		"Dave": types.GradeF, "Eve": types.GradeF,
	}
	for name, w := range want {
		got, ok := g.Of(name)
		if !ok {
			t.Errorf("Of(%q): missing", name)
			continue
		}
		if got != w {
			t.Errorf("Of(%q) = %q, want %q", name, got, w)
		}
	}
	if _, ok := g.Of("Zed"); ok {
		t.Error("Of(Zed) should not be found")
	}
}

func TestAssignGrades_KeepsRosterOrder(t *testing.T) {
	r := build("Zoe", 91, "Adam", 61)
	all := AssignGrades(r).All()
	if all[0].Name != "Zoe" || all[1].Name != "Adam" {
		t.Errorf("All() order = [%s %s], want [Zoe Adam]", all[0].Name, all[1].Name)
	}
	if all[1].Grade != types.GradeD {
		t.Errorf("Adam grade = %q, want D", all[1].Grade)
	}
}

// --- Tally() ---

func TestTally_AllLettersPresent(t *testing.T) {
	d := Tally(AssignGrades(roster.New()))
	if len(d) != 5 {
		t.Fatalf("Distribution has %d slots, want 5", len(d))
	}
	for _, g := range types.Grades {
		if d.Count(g) != 0 {
			t.Errorf("empty input: count[%s] = %d, want 0", g, d.Count(g))
		}
	}
	if d.Total() != 0 {
		t.Errorf("Total() = %d, want 0", d.Total())
	}
	if d.Percent(types.GradeA) != 0 {
		t.Errorf("Percent on empty distribution = %v, want 0", d.Percent(types.GradeA))
	}
}

func TestTally_SumsToRecordCount(t *testing.T) {
	tests := []struct {
		name   string
		roster *roster.Roster
	}{
		{"single", build("A", 50)},
		{"all A", build("A", 90, "B", 95, "C", 100)},
		{"mixed", build("A", 95, "B", 82, "C", 71, "D", 65, "E", 38, "F", 0)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := Tally(AssignGrades(tc.roster))
			if d.Total() != tc.roster.Len() {
				t.Errorf("Total() = %d, want %d", d.Total(), tc.roster.Len())
			}
		})
	}
}

func TestTally_Counts(t *testing.T) {
	d := Tally(AssignGrades(build("a", 95, "b", 91, "c", 85, "d", 10)))
	if d.Count(types.GradeA) != 2 || d.Count(types.GradeB) != 1 || d.Count(types.GradeF) != 1 {
		t.Errorf("counts = %v", d)
	}
	if !almostEqual(d.Percent(types.GradeA), 50, 0.001) {
		t.Errorf("Percent(A) = %.2f, want 50", d.Percent(types.GradeA))
	}
	if d.Count(types.Grade("Z")) != 0 {
		t.Error("unknown letter should count 0")
	}
}

// --- Grades.SortedByName() ---

func TestGrades_SortedByName(t *testing.T) {
	g := AssignGrades(build("bob", 10, "Alice", 95, "Carol", 71))

	got := g.SortedByName()
	names := []string{got[0].Name, got[1].Name, got[2].Name}
	// Byte order: upper-case letters sort before lower-case.
	want := []string{"Alice", "Carol", "bob"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("SortedByName() names = %v, want %v", names, want)
	}
	if g.All()[0].Name != "bob" {
		t.Error("SortedByName() must not reorder the grades")
	}
}
