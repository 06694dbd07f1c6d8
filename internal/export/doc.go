// Package export writes an analysis Result to disk.
//
// Two formats are supported:
//   - csv: a three-column table with the fixed header
//     "Student Name,Marks,Grade", one row per student, sorted by name.
//   - prom: Prometheus text exposition (gradebook_* gauges), built as
//     client_model MetricFamily values and encoded with expfmt so the file can
//     be dropped into a node_exporter textfile directory.
//
// ToFile never silently replaces an existing file: it returns ErrFileExists
// unless overwrite is set, and it writes through a temp file + rename.
package export
