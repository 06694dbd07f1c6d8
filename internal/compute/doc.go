// Package compute derives grade statistics from a roster of student scores.
//
// The four components are pure functions over an immutable roster:
//
//   - Statistics: mean, median, highest and lowest score with their holders.
//     Ties go to the first student in roster order.
//   - AssignGrade / AssignGrades: fixed bands A ≥90, B ≥80, C ≥70, D ≥60, F <60,
//     inclusive at the lower bound.
//   - Tally: per-letter counts, all five letters always present.
//   - PassFail: splits names at PassThreshold (40, inclusive pass).
//
// analyzer.go wires them into one Result per run. Analyzer.Analyze rejects an
// empty roster or an out-of-range score up front; the ingest layer is expected
// to have filtered both already. Clock and run-id generator are injectable so
// tests are deterministic.
package compute
