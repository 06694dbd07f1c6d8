// Package types defines Go types shared by the analysis core and the
// ingest, report and export layers. Grade is the canonical letter-grade
// representation; it is rendered as a single upper-case letter everywhere.
package types
