package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/gradebook/gradebook/internal/compute"
	"github.com/gradebook/gradebook/pkg/types"
)

// Width is the length of the rules between sections.
const Width = 60

// Options controls rendering.
type Options struct {
	// Color enables ANSI colour for headings and pass/fail lines.
	Color bool
}

// Palette holds the colours used by the report and the interactive session.
type Palette struct {
	Heading *color.Color
	Good    *color.Color
	Bad     *color.Color
}

// NewPalette returns a palette with colour forced on or off, independent of
// fatih/color's global terminal detection.
func NewPalette(enabled bool) Palette {
	p := Palette{
		Heading: color.New(color.FgCyan, color.Bold),
		Good:    color.New(color.FgGreen),
		Bad:     color.New(color.FgRed),
	}
	for _, c := range []*color.Color{p.Heading, p.Good, p.Bad} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// Rule returns a line of Width copies of ch.
func Rule(ch string) string {
	return strings.Repeat(ch, Width)
}

// Render writes the full report for res to w.
func Render(w io.Writer, res *compute.Result, opts Options) error {
	rw := &errWriter{w: w}
	p := NewPalette(opts.Color)

	statistics(rw, p, res)
	distribution(rw, p, res)
	passFail(rw, p, res)
	table(rw, p, res)

	return rw.err
}

func section(w *errWriter, p Palette, title string) {
	w.printf("\n%s\n", Rule("="))
	w.printf("%s\n", p.Heading.Sprint(title))
	w.printf("%s\n", Rule("="))
}

func statistics(w *errWriter, p Palette, res *compute.Result) {
	st := res.Stats
	section(w, p, "STATISTICAL ANALYSIS")
	w.printf("Total Students: %d\n", st.Count)
	w.printf("Average Score: %.2f\n", st.Mean)
	w.printf("Median Score: %.2f\n", st.Median)
	w.printf("Highest Score: %.2f (%s)\n", st.Max.Score, st.Max.Name)
	w.printf("Lowest Score: %.2f (%s)\n", st.Min.Score, st.Min.Name)
}

func distribution(w *errWriter, p Palette, res *compute.Result) {
	d := res.Distribution
	section(w, p, "GRADE DISTRIBUTION")
	for _, g := range types.Grades {
		w.printf("Grade %s: %2d students (%5.1f%%)\n", g, d.Count(g), d.Percent(g))
	}
}

func passFail(w *errWriter, p Palette, res *compute.Result) {
	s := res.Split
	section(w, p, "PASS/FAIL SUMMARY")
	w.printf("%s\n", p.Good.Sprintf("Passed (≥%g): %d students", compute.PassThreshold, len(s.Passed)))
	if len(s.Passed) > 0 {
		w.printf("  → %s\n", strings.Join(s.Passed, ", "))
	}
	w.printf("%s\n", p.Bad.Sprintf("Failed (<%g): %d students", compute.PassThreshold, len(s.Failed)))
	if len(s.Failed) > 0 {
		w.printf("  → %s\n", strings.Join(s.Failed, ", "))
	}
}

func table(w *errWriter, p Palette, res *compute.Result) {
	section(w, p, "RESULTS TABLE")
	w.printf("%-20s %10s %8s\n", "Name", "Marks", "Grade")
	w.printf("%s\n", Rule("-"))

	for _, g := range res.Grades.SortedByName() {
		w.printf("%-20s %10.2f %8s\n", g.Name, g.Score, g.Grade)
	}
	w.printf("%s\n", Rule("="))
}

// errWriter remembers the first write error so rendering code can stay linear.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}
