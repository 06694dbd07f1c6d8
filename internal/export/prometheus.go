package export

import (
	"fmt"
	"io"
	"strings"

	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
	"google.golang.org/protobuf/proto"

	"github.com/gradebook/gradebook/internal/compute"
	"github.com/gradebook/gradebook/pkg/types"
)

// Metric family names written by WritePrometheus.
const (
	metricStudents     = "gradebook_students"
	metricMean         = "gradebook_score_mean"
	metricMedian       = "gradebook_score_median"
	metricMax          = "gradebook_score_max"
	metricMin          = "gradebook_score_min"
	metricGrade        = "gradebook_grade_students"
	metricPassed       = "gradebook_passed_students"
	metricFailed       = "gradebook_failed_students"
	metricStudentScore = "gradebook_student_score"
)

// WritePrometheus writes res as Prometheus text exposition.
func WritePrometheus(w io.Writer, res *compute.Result) error {
	for _, mf := range families(res) {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("export: encode %s: %w", mf.GetName(), err)
		}
	}
	return nil
}

// families builds every metric family for res, in a stable order.
func families(res *compute.Result) []*dto.MetricFamily {
	st := res.Stats

	grades := make([]*dto.Metric, 0, len(types.Grades))
	for _, g := range types.Grades {
		grades = append(grades, gauge(float64(res.Distribution.Count(g)), "grade", g.String()))
	}

	students := make([]*dto.Metric, 0, res.Grades.Len())
	for _, g := range res.Grades.SortedByName() {
		students = append(students, gauge(g.Score, "student", g.Name, "grade", g.Grade.String()))
	}

	return []*dto.MetricFamily{
		family(metricStudents, "Number of students analysed.", gauge(float64(st.Count))),
		family(metricMean, "Arithmetic mean of all scores.", gauge(st.Mean)),
		family(metricMedian, "Median of all scores.", gauge(st.Median)),
		family(metricMax, "Highest score and the student holding it.", gauge(st.Max.Score, "student", st.Max.Name)),
		family(metricMin, "Lowest score and the student holding it.", gauge(st.Min.Score, "student", st.Min.Name)),
		family(metricGrade, "Number of students per letter grade.", grades...),
		family(metricPassed, fmt.Sprintf("Number of students scoring at least %g.", compute.PassThreshold), gauge(float64(len(res.Split.Passed)))),
		family(metricFailed, fmt.Sprintf("Number of students scoring below %g.", compute.PassThreshold), gauge(float64(len(res.Split.Failed)))),
		family(metricStudentScore, "Score of each student with the letter grade earned.", students...),
	}
}

func family(name, help string, metrics ...*dto.Metric) *dto.MetricFamily {
	return &dto.MetricFamily{
		Name:   proto.String(name),
		Help:   proto.String(help),
		Type:   dto.MetricType_GAUGE.Enum(),
		Metric: metrics,
	}
}

// gauge builds a gauge sample; labels are name/value pairs. Label values
// must be valid UTF-8, so invalid bytes are replaced with U+FFFD.
func gauge(v float64, labels ...string) *dto.Metric {
	m := &dto.Metric{Gauge: &dto.Gauge{Value: proto.Float64(v)}}
	for i := 0; i+1 < len(labels); i += 2 {
		m.Label = append(m.Label, &dto.LabelPair{
			Name:  proto.String(labels[i]),
			Value: proto.String(strings.ToValidUTF8(labels[i+1], "\uFFFD")),
		})
	}
	return m
}
