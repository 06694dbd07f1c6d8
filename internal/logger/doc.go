// Package logger configures the zerolog logger shared by every package.
// Output goes to stderr so the report printed on stdout stays clean.
package logger
