package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/vedantwpatil/FocusFrame/internal/logging"
)

// reloadDebounce batches the burst of events an editor produces on save.
const reloadDebounce = 500 * time.Millisecond

// Watcher reloads a configuration file when it changes on disk.
type Watcher struct {
	path     string
	watcher  *fsnotify.Watcher
	debounce time.Duration
}

// NewWatcher starts watching path. The directory is watched rather than the
// file so saves that replace the file are seen too.
func NewWatcher(path string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create config watcher: %w", err)
	}
	path = filepath.Clean(path)
	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", path, err)
	}
	return &Watcher{path: path, watcher: w, debounce: reloadDebounce}, nil
}

// Run delivers every valid reloaded configuration to fn until ctx is done.
// Files that fail to decode or validate are logged and skipped.
func (w *Watcher) Run(ctx context.Context, fn func(*Config)) {
	defer w.watcher.Close()
	log := logging.Logger()

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	pending := false

	for {
		select {
		case <-ctx.Done():
			return

		case <-timer.C:
			if !pending {
				continue
			}
			pending = false
			cfg, err := readConfig(w.path)
			if err != nil {
				log.Warn("config reload skipped", "path", w.path, "err", err)
				continue
			}
			log.Info("config reloaded", "path", w.path)
			fn(cfg)

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 && !pending {
				pending = true
				timer.Reset(w.debounce)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Warn("config watcher error", "err", err)
		}
	}
}

// Watch reloads path in the background until ctx is done.
func Watch(ctx context.Context, path string, fn func(*Config)) error {
	w, err := NewWatcher(path)
	if err != nil {
		return err
	}
	go w.Run(ctx, fn)
	return nil
}
