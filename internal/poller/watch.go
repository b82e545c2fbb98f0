package poller

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch signals on trigger whenever the file at path is written, created or
// renamed into place. The parent directory is watched so editors and sync
// scripts that replace the file atomically are still seen. Signals are
// coalesced: if a trigger is already pending no new one is queued.
//
// Watch blocks until ctx is cancelled and closes trigger on return.
func Watch(ctx context.Context, path string, trigger chan<- struct{}) error {
	defer close(trigger)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", path, err)
	}
	dir := filepath.Dir(abs)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	slog.Debug("watching source file", "path", abs)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			slog.Debug("source file changed", "path", abs, "op", event.Op.String())
			select {
			case trigger <- struct{}{}:
			default:
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("source watcher error", "error", err)
		}
	}
}
