package index

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/docserve/internal/logfields"
)

const debounceWindow = 300 * time.Millisecond

// Watch rebuilds the index whenever something under contentDir changes.
// Events are debounced so an editor save burst costs one rebuild. Blocks
// until ctx is canceled.
func (m *Manager) Watch(ctx context.Context, contentDir string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := addDirsRecursive(watcher, contentDir); err != nil {
		return err
	}

	rebuildReq, trigger := debouncer()
	slog.Info("Watching content directory", logfields.Path(contentDir))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-rebuildReq:
			// Rebuild errors are logged inside Rebuild; the watcher keeps
			// running so the next content fix recovers on its own.
			_ = m.Rebuild(ctx)
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			// New directories need their own watch before events from
			// inside them can arrive.
			if event.Op.Has(fsnotify.Create) {
				if info, statErr := os.Stat(event.Name); statErr == nil && info.IsDir() {
					_ = addDirsRecursive(watcher, event.Name)
				}
			}
			trigger()
		case werr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("Watcher error", logfields.Error(werr))
		}
	}
}

// debouncer coalesces triggers into at most one pending rebuild request.
func debouncer() (chan struct{}, func()) {
	var mu sync.Mutex
	var timer *time.Timer
	req := make(chan struct{}, 1)

	trigger := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(debounceWindow, func() {
			select {
			case req <- struct{}{}:
			default:
			}
		})
	}
	return req, trigger
}

func addDirsRecursive(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if d.Name() != filepath.Base(root) && d.Name()[0] == '.' {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}
