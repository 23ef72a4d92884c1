package hem

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"hem/util"
)

// Watcher reports source changes under a set of directory trees,
// coalescing bursts of events into one callback.
type Watcher struct {
	fsw      *fsnotify.Watcher
	debounce time.Duration
	logger   *util.Logger
}

// NewWatcher returns a Watcher that waits debounce after the last
// event before reporting.
func NewWatcher(debounce time.Duration, logger *util.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{fsw: fsw, debounce: debounce, logger: logger}, nil
}

// Add watches every directory under each root.  Missing roots are
// skipped.
func (w *Watcher) Add(roots ...string) error {
	for _, root := range roots {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() {
				return nil
			}
			if path != root && hidden(path) {
				return filepath.SkipDir
			}
			return w.fsw.Add(path)
		})
		if err != nil && !os.IsNotExist(err) {
			return err
		}
		if err == nil {
			w.logger.Debug("watching %s", root)
		}
	}
	return nil
}

// Close releases the underlying watcher.
func (w *Watcher) Close() error { return w.fsw.Close() }

// Run delivers changed paths to onChange until ctx is done or the
// watcher is closed.  onChange runs on Run's goroutine.
func (w *Watcher) Run(ctx context.Context, onChange func(paths []string)) {
	pending := make(map[string]struct{})
	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !relevant(ev) {
				continue
			}
			if ev.Has(fsnotify.Create) {
				if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
					if err := w.Add(ev.Name); err != nil {
						w.logger.Warn("watch %s: %v", ev.Name, err)
					}
					continue
				}
			}
			pending[ev.Name] = struct{}{}
			resetTimer(timer, w.debounce)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch: %v", err)

		case <-timer.C:
			paths := make([]string, 0, len(pending))
			for p := range pending {
				paths = append(paths, p)
			}
			sort.Strings(paths)
			pending = make(map[string]struct{})
			onChange(paths)
		}
	}
}

// resetTimer restarts t for d, discarding a tick that fired but was
// never received so it cannot end the new window early.
func resetTimer(t *time.Timer, d time.Duration) {
	if !t.Stop() {
		select {
		case <-t.C:
		default:
		}
	}
	t.Reset(d)
}

// relevant filters out attribute-only changes and editor droppings.
func relevant(ev fsnotify.Event) bool {
	if ev.Op == fsnotify.Chmod {
		return false
	}
	if hidden(ev.Name) {
		return false
	}
	return !strings.HasSuffix(ev.Name, "~")
}

func hidden(path string) bool {
	return strings.HasPrefix(filepath.Base(path), ".")
}

// watch builds once, then rebuilds whenever a source changes, until
// ctx is cancelled.  Failed rebuilds are logged and the loop keeps
// going.
func (h *Hem) watch(ctx context.Context) error {
	if err := h.build(ctx); err != nil {
		h.Logger.Error("%v", err)
	}

	w, err := NewWatcher(h.Config.Debounce, h.Logger)
	if err != nil {
		return err
	}
	defer w.Close()
	if err := w.Add(h.Manifest.WatchDirs()...); err != nil {
		return err
	}

	h.Logger.Info("watching for changes")
	w.Run(ctx, func(paths []string) {
		h.Logger.Verbose("changed: %v", paths)
		if err := h.build(ctx); err != nil {
			h.Logger.Error("%v", err)
		}
	})
	return nil
}
