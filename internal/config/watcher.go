package config

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads the configuration file on change, with debouncing so
// editor write bursts trigger one reload.
type Watcher struct {
	path     string
	log      *slog.Logger
	debounce time.Duration
}

// NewWatcher creates a watcher for path.
func NewWatcher(path string, logger *slog.Logger) *Watcher {
	return &Watcher{path: path, log: logger, debounce: 100 * time.Millisecond}
}

// Watch blocks until ctx is done, invoking onReload with the freshly loaded
// configuration after each change to the watched file.
func (w *Watcher) Watch(ctx context.Context, onReload func(Config)) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fsw.Close()

	// Watch the directory: editors replace files rather than write in place.
	if err := fsw.Add(filepath.Dir(w.path)); err != nil {
		return err
	}

	var timer *time.Timer
	reload := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != filepath.Clean(w.path) {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.debounce, func() {
				select {
				case reload <- struct{}{}:
				default:
				}
			})

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("config watcher error", "err", err)

		case <-reload:
			cfg, err := Load(w.path)
			if err != nil {
				w.log.Warn("config reload failed", "path", w.path, "err", err)
				continue
			}
			w.log.Info("config reloaded", "path", w.path)
			onReload(cfg)
		}
	}
}
