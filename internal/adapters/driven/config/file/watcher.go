package file

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/ideapad/internal/logger"
)

// reloadDelay coalesces the burst of events editors emit on save.
const reloadDelay = 100 * time.Millisecond

// Watcher reloads a ConfigStore when its file changes on disk.
type Watcher struct {
	store    *ConfigStore
	onChange func()
}

// NewWatcher creates a watcher for store. onChange, if set, runs after
// every successful reload.
func NewWatcher(store *ConfigStore, onChange func()) *Watcher {
	return &Watcher{store: store, onChange: onChange}
}

// Run watches until ctx is cancelled. The directory is watched rather than
// the file so atomic renames are seen.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()

	dir := filepath.Dir(w.store.Path())
	if err := fw.Add(dir); err != nil {
		return err
	}
	logger.Debug("config: watching %s", w.store.Path())

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != filepath.Clean(w.store.Path()) {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(reloadDelay)
			} else {
				timer.Reset(reloadDelay)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			if err := w.store.Load(); err != nil {
				logger.Warn("config: reloading %s: %v", w.store.Path(), err)
				continue
			}
			logger.Debug("config: reloaded %s", w.store.Path())
			if w.onChange != nil {
				w.onChange()
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("config: watcher error: %v", err)
		}
	}
}
