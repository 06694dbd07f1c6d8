package ingest

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/gradebook/gradebook/internal/watch"
)

// Watch re-imports path every time it changes and calls onChange with the new
// Load. It runs until ctx is cancelled. aliases is consulted on every reload so
// a hot-reloaded alias table takes effect on the next change.
//
// A failed import is logged and skipped; onChange only sees usable data.
func Watch(ctx context.Context, path string, aliases func() Aliases, log zerolog.Logger, onChange func(*Load)) error {
	log = log.With().Str("component", "ingest").Logger()
	return watch.File(ctx, path, watch.DefaultSettle, log, func() error {
		ld, err := LoadFile(path, aliases())
		if err != nil {
			return err
		}
		log.Info().Str("path", path).Int("students", ld.Roster.Len()).
			Int("skipped", ld.Skipped).Msg("input reloaded")
		onChange(ld)
		return nil
	})
}
