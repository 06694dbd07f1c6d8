package compute

// PassThreshold is the lowest passing score.
const PassThreshold = 40.0

// Split partitions student names into those who passed and those who failed.
// Both lists keep roster order; together they cover every name exactly once.
type Split struct {
	Passed []string
	Failed []string
}

// PassFail splits r at PassThreshold. A score equal to the threshold passes.
func PassFail(r Scores) Split {
	s := Split{Passed: []string{}, Failed: []string{}}
	for _, rec := range r.Records() {
		if rec.Score >= PassThreshold {
			s.Passed = append(s.Passed, rec.Name)
		} else {
			s.Failed = append(s.Failed, rec.Name)
		}
	}
	return s
}
