package roster

// Record is one student's name and score.
type Record struct {
	Name  string  `validate:"required,utf8"`
	Score float64 `validate:"gte=0,lte=100"`
}

// Roster is an ordered set of records keyed by student name.
// The zero value is an empty roster ready for use.
type Roster struct {
	records []Record
	index   map[string]int
}

// New returns an empty Roster.
func New() *Roster {
	return &Roster{index: make(map[string]int)}
}

// Put inserts name with score, or replaces the score of an existing name
// without moving it.
func (r *Roster) Put(name string, score float64) {
	if r.index == nil {
		r.index = make(map[string]int)
	}
	if i, ok := r.index[name]; ok {
		r.records[i].Score = score
		return
	}
	r.index[name] = len(r.records)
	r.records = append(r.records, Record{Name: name, Score: score})
}

// Len returns the number of distinct students.
func (r *Roster) Len() int {
	if r == nil {
		return 0
	}
	return len(r.records)
}

// Score returns the score recorded for name.
func (r *Roster) Score(name string) (float64, bool) {
	if r == nil {
		return 0, false
	}
	i, ok := r.index[name]
	if !ok {
		return 0, false
	}
	return r.records[i].Score, true
}

// Records returns a copy of all records in insertion order.
func (r *Roster) Records() []Record {
	if r == nil {
		return nil
	}
	out := make([]Record, len(r.records))
	copy(out, r.records)
	return out
}
