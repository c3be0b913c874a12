// Package watch reruns generation when its input files change.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// DefaultDelay is how long a burst of events must settle before a rerun.
const DefaultDelay = 200 * time.Millisecond

// Watcher watches a set of files and calls a function after they change.
type Watcher struct {
	files map[string]bool
	delay time.Duration
	log   zerolog.Logger
}

// New creates a Watcher for paths. Empty paths are ignored.
func New(paths []string, delay time.Duration, log zerolog.Logger) *Watcher {
	w := &Watcher{
		files: make(map[string]bool, len(paths)),
		delay: delay,
		log:   log,
	}
	for _, p := range paths {
		if p == "" {
			continue
		}
		if abs, err := filepath.Abs(p); err == nil {
			p = abs
		}
		w.files[filepath.Clean(p)] = true
	}
	return w
}

// Run watches the parent directories of the files, which also catches
// editors that save by renaming, and calls fn once per settled burst of
// writes. A failing fn is logged and watching continues. Run returns when
// ctx is done.
func (w *Watcher) Run(ctx context.Context, fn func() error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	dirs := make(map[string]bool)
	for file := range w.files {
		dir := filepath.Dir(file)
		if dirs[dir] {
			continue
		}
		dirs[dir] = true
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watch directory: %w", err)
		}
		w.log.Info().Str("path", file).Msg("watching for changes")
	}

	timer := time.NewTimer(w.delay)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !w.files[filepath.Clean(event.Name)] {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			w.log.Debug().
				Str("event", event.Op.String()).
				Str("file", event.Name).
				Msg("input changed")
			timer.Reset(w.delay)

		case <-timer.C:
			if err := fn(); err != nil {
				w.log.Error().Err(err).Msg("regeneration failed")
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.log.Error().Err(err).Msg("file watcher error")

		case <-ctx.Done():
			return nil
		}
	}
}
