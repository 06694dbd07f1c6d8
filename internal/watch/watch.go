package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// DefaultSettle is how long File waits after the last event before reloading.
const DefaultSettle = 50 * time.Millisecond

// Reloader is called after the watched file settles. A returned error is
// logged and the watch continues.
type Reloader func() error

// File watches path until ctx is cancelled, calling reload once per burst of
// changes. It returns an error straight away if path does not exist or the
// watcher cannot be started.
func File(ctx context.Context, path string, settle time.Duration, log zerolog.Logger, reload Reloader) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	log.Info().Str("path", path).Msg("watching for changes")

	timer := time.NewTimer(settle)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs || !relevant(event) {
				continue
			}
			timer.Reset(settle)

		case <-timer.C:
			if err := reload(); err != nil {
				log.Warn().Err(err).Str("path", path).Msg("reload failed, waiting for next change")
				continue
			}
			log.Debug().Str("path", path).Msg("reloaded")

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Error().Err(err).Msg("watcher error")
		}
	}
}

// relevant reports whether event may have changed the file's contents.
// Remove is ignored: a rename-over save is followed by a Create.
func relevant(event fsnotify.Event) bool {
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}
