// Package report renders an analysis Result as a fixed-width console report:
// statistics, grade distribution, pass/fail summary and a results table
// sorted by name. Sorting happens here only; the Result keeps roster order.
package report
