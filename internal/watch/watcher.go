package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/hakkan/internal/logfields"
)

// DefaultDebounce is how long the watcher waits for events to settle.
const DefaultDebounce = 300 * time.Millisecond

// Watcher watches directory trees and reports settled changes.
type Watcher struct {
	fsw      *fsnotify.Watcher
	roots    []string
	debounce time.Duration
	exclude  []string
	onChange func(trigger string)

	mu    sync.Mutex
	timer *time.Timer
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithDebounce overrides DefaultDebounce.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) { w.debounce = d }
}

// WithExclude drops events at or below each path prefix. The generator's
// output, staging and backup directories are excluded this way.
func WithExclude(prefixes ...string) WatcherOption {
	return func(w *Watcher) {
		for _, p := range prefixes {
			if abs, err := filepath.Abs(p); err == nil {
				w.exclude = append(w.exclude, abs)
			}
		}
	}
}

// NewWatcher watches every directory below roots. Missing roots are skipped.
// onChange receives the path of the last event of a burst.
func NewWatcher(roots []string, onChange func(trigger string), opts ...WatcherOption) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("fsnotify: %w", err)
	}
	w := &Watcher{
		fsw:      fsw,
		debounce: DefaultDebounce,
		onChange: onChange,
	}
	for _, opt := range opts {
		opt(w)
	}
	for _, root := range roots {
		abs, err := filepath.Abs(root)
		if err != nil {
			_ = fsw.Close()
			return nil, err
		}
		if fi, err := os.Stat(abs); err != nil || !fi.IsDir() {
			slog.Warn("Skipping watch root", logfields.Path(abs))
			continue
		}
		w.addDirsRecursive(abs)
		w.roots = append(w.roots, abs)
	}
	if len(w.roots) == 0 {
		_ = fsw.Close()
		return nil, fmt.Errorf("no directory to watch")
	}
	return w, nil
}

// Roots returns the watched root directories.
func (w *Watcher) Roots() []string { return append([]string(nil), w.roots...) }

// Run handles events until ctx is done, then releases the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.close()
	slog.Info("Watching for changes", logfields.Count(len(w.roots)))
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(ev)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			slog.Warn("Watcher error", logfields.Error(err))
		}
	}
}

func (w *Watcher) handleEvent(ev fsnotify.Event) {
	if shouldIgnore(ev.Name) || w.excluded(ev.Name) || ev.Op == fsnotify.Chmod {
		return
	}
	if ev.Op.Has(fsnotify.Create) {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			w.addDirsRecursive(ev.Name)
		}
	}
	slog.Debug("File change detected", logfields.Path(ev.Name), slog.String("op", ev.Op.String()))
	w.schedule(ev.Name)
}

func (w *Watcher) schedule(trigger string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() { w.onChange(trigger) })
}

func (w *Watcher) close() {
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()
	if err := w.fsw.Close(); err != nil {
		slog.Warn("Failed to close watcher", logfields.Error(err))
	}
}

func (w *Watcher) addDirsRecursive(root string) {
	_ = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if w.excluded(path) {
				return filepath.SkipDir
			}
			if err := w.fsw.Add(path); err != nil {
				slog.Warn("Watch add failed", logfields.Path(path), logfields.Error(err))
			}
		}
		return nil
	})
}

// excluded reports whether path is an excluded directory, one of its staging
// or backup siblings, or anything below them.
func (w *Watcher) excluded(path string) bool {
	for _, ex := range w.exclude {
		for _, dir := range []string{ex, ex + "_stage", ex + ".prev"} {
			if path == dir || strings.HasPrefix(path, dir+string(filepath.Separator)) {
				return true
			}
		}
	}
	return false
}

// shouldIgnore reports hidden and editor scratch files.
func shouldIgnore(path string) bool {
	base := filepath.Base(path)
	switch {
	case strings.HasPrefix(base, "."):
		return true
	case strings.HasSuffix(base, "~"), strings.HasSuffix(base, ".swp"), strings.HasSuffix(base, ".swx"):
		return true
	case strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#"):
		return true
	}
	return false
}
