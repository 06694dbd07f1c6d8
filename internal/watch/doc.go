// Package watch re-runs a reload callback when a single file changes on disk.
//
// The parent directory is watched rather than the file itself, so editors and
// tools that save by writing a temp file and renaming it over the original
// keep triggering reloads. Bursts of events (truncate followed by write, or
// create followed by chmod) are coalesced by a short settle delay before the
// callback runs.
package watch
