// Package ingest turns raw input into a roster.Roster the analysis core can
// trust: every record has a non-empty name and a score in [0, 100].
//
// File imports (LoadFile) accept delimited text and .xlsx workbooks. The name
// and score columns are located through an alias table (Aliases) matched
// case-insensitively against the header row; when no alias matches, the first
// unused column is taken as the name and the next one as the score. Rows that
// fail to parse or validate are skipped and counted, never surfaced as errors.
//
// Interactive entry uses ParseScore and ValidateRecord, which return
// user-facing messages (validator/v10 with English translations).
//
// Watch re-imports a file each time it changes on disk, reading the alias
// table afresh on every reload.
package ingest
