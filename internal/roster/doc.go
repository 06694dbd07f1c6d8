// Package roster holds the typed name→score container consumed by the
// analysis core.
//
// A Roster keeps records in first-insertion order and indexes them by name.
// Put on an existing name overwrites the score in place (last write wins) so
// duplicate rows in an import cannot produce two records for one student.
// Iteration order is therefore explicit: it is the order in which names were
// first seen, which is also the order used for max/min tie-breaks and for
// the pass/fail lists.
package roster
