package main

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/rs/zerolog"

	"github.com/gradebook/gradebook/internal/compute"
	"github.com/gradebook/gradebook/internal/export"
	"github.com/gradebook/gradebook/internal/ingest"
	"github.com/gradebook/gradebook/internal/report"
)

// batch runs the non-interactive mode: import one file, report, optionally
// export, and optionally repeat whenever the file changes.
type batch struct {
	log        zerolog.Logger
	analyzer   *compute.Analyzer
	out        io.Writer
	input      string
	exportPath string
	format     export.Format
	force      bool
	color      bool

	mu      sync.Mutex
	aliases ingest.Aliases
	written bool // exportPath was written by this process
}

func (b *batch) setAliases(a ingest.Aliases) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.aliases = a
}

func (b *batch) currentAliases() ingest.Aliases {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.aliases
}

// runOnce imports the input file and analyses it.
func (b *batch) runOnce() error {
	ld, err := ingest.LoadFile(b.input, b.currentAliases())
	if err != nil {
		return err
	}
	return b.analyze(ld)
}

// analyze reports on ld and writes the export if one was requested.
func (b *batch) analyze(ld *ingest.Load) error {
	if ld.Skipped > 0 {
		b.log.Warn().Str("input", b.input).Int("skipped", ld.Skipped).Msg("invalid rows skipped")
	}

	res, err := b.analyzer.Analyze(ld.Roster)
	if err != nil {
		return err
	}
	if err := report.Render(b.out, res, report.Options{Color: b.color}); err != nil {
		return fmt.Errorf("render report: %w", err)
	}

	if b.exportPath == "" {
		return nil
	}
	// Later runs in watch mode replace the file this process wrote earlier.
	if err := export.ToFile(b.exportPath, b.format, res, b.force || b.written); err != nil {
		return err
	}
	b.written = true
	b.log.Info().Str("path", b.exportPath).Str("format", string(b.format)).
		Str("run_id", res.RunID).Msg("results exported")
	return nil
}

// watch re-runs the analysis on every change to the input file until ctx is
// cancelled.
func (b *batch) watch(ctx context.Context) error {
	return ingest.Watch(ctx, b.input, b.currentAliases, b.log, func(ld *ingest.Load) {
		if err := b.analyze(ld); err != nil {
			b.log.Error().Err(err).Str("input", b.input).Msg("analysis failed")
		}
	})
}
