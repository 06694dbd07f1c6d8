package config

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/gradebook/gradebook/internal/watch"
)

// Watch reloads the config at path whenever it changes and passes the result
// to onChange. It runs until ctx is cancelled.
//
// An invalid file (e.g. half-written YAML) is logged and the previous config
// stays in effect.
func Watch(ctx context.Context, path string, log zerolog.Logger, onChange func(*Config)) error {
	log = log.With().Str("component", "config").Logger()
	return watch.File(ctx, path, watch.DefaultSettle, log, func() error {
		cfg, err := Load(path)
		if err != nil {
			return err
		}
		log.Info().Str("path", path).Msg("config reloaded")
		onChange(cfg)
		return nil
	})
}
