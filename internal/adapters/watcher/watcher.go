package watcher

import (
	"context"
	"errors"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	qfs "go.trai.ch/qworld/internal/adapters/fs"
	"go.trai.ch/qworld/internal/core/domain"
	"go.trai.ch/qworld/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Watcher = (*Watcher)(nil)

const eventChannelBuffer = 100

// Watcher implements ports.Watcher using fsnotify.
//
// Directory roots are watched recursively and newly created subdirectories are
// added as they appear. A file root is watched through its parent directory
// and only events for that file are reported.
type Watcher struct {
	logger ports.Logger

	mu        sync.Mutex
	fsWatcher *fsnotify.Watcher
	trees     map[string]struct{}
	files     map[string]struct{}

	events chan ports.WatchEvent
}

// NewWatcher creates a watcher. No operating system resources are held until Start.
func NewWatcher(logger ports.Logger) *Watcher {
	return &Watcher{
		logger: logger,
		trees:  make(map[string]struct{}),
		files:  make(map[string]struct{}),
		events: make(chan ports.WatchEvent, eventChannelBuffer),
	}
}

// Start registers every root and begins delivering events until ctx is done.
func (w *Watcher) Start(ctx context.Context, roots ...string) error {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return zerr.Wrap(err, domain.ErrWatcherStartFailed.Error())
	}

	w.mu.Lock()
	w.fsWatcher = fsWatcher
	for _, root := range roots {
		if err := w.addRoot(filepath.Clean(root)); err != nil {
			w.fsWatcher = nil
			w.mu.Unlock()
			_ = fsWatcher.Close()
			return err
		}
	}
	w.mu.Unlock()

	go w.processEvents(ctx, fsWatcher)

	return nil
}

// Stop releases the underlying fsnotify watcher. The event stream ends shortly after.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.fsWatcher == nil {
		return nil
	}
	err := w.fsWatcher.Close()
	w.fsWatcher = nil
	return err
}

// Events returns an iterator of file system events.
func (w *Watcher) Events() iter.Seq[ports.WatchEvent] {
	return func(yield func(ports.WatchEvent) bool) {
		for event := range w.events {
			if !yield(event) {
				return
			}
		}
	}
}

// addRoot must be called with mu held.
func (w *Watcher) addRoot(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrWatcherStartFailed.Error()), "path", root)
	}

	if !info.IsDir() {
		dir := filepath.Dir(root)
		if err := w.fsWatcher.Add(dir); err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrWatcherStartFailed.Error()), "path", dir)
		}
		w.files[root] = struct{}{}
		return nil
	}

	for dir := range directories(root) {
		if err := w.fsWatcher.Add(dir); err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrWatcherStartFailed.Error()), "path", dir)
		}
		w.trees[dir] = struct{}{}
	}
	return nil
}

func (w *Watcher) processEvents(ctx context.Context, fsWatcher *fsnotify.Watcher) {
	defer close(w.events)

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-fsWatcher.Events:
			if !ok {
				return
			}

			watchEvent, ok := w.convertEvent(event)
			if !ok {
				continue
			}

			if watchEvent.Operation == ports.OpCreate {
				w.watchNewDirectory(watchEvent.Path)
			}

			select {
			case w.events <- watchEvent:
			case <-ctx.Done():
				return
			}
		case err, ok := <-fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watcher: " + err.Error())
		}
	}
}

// watchNewDirectory extends a watched tree with a directory created inside it.
func (w *Watcher) watchNewDirectory(path string) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.fsWatcher == nil {
		return
	}
	if _, ok := w.trees[filepath.Dir(path)]; !ok {
		return
	}
	for dir := range directories(path) {
		if err := w.fsWatcher.Add(dir); err != nil && !errors.Is(err, fs.ErrNotExist) {
			w.logger.Warn("watcher: cannot watch " + dir + ": " + err.Error())
			continue
		}
		w.trees[dir] = struct{}{}
	}
}

// convertEvent maps an fsnotify event onto a WatchEvent and drops events
// outside the watched roots.
func (w *Watcher) convertEvent(event fsnotify.Event) (ports.WatchEvent, bool) {
	if !w.tracks(event.Name) {
		return ports.WatchEvent{}, false
	}

	var op ports.WatchOp
	switch {
	case event.Has(fsnotify.Write):
		op = ports.OpWrite
	case event.Has(fsnotify.Create):
		op = ports.OpCreate
	case event.Has(fsnotify.Remove):
		op = ports.OpRemove
	case event.Has(fsnotify.Rename):
		op = ports.OpRename
	default:
		return ports.WatchEvent{}, false
	}

	return ports.WatchEvent{Path: event.Name, Operation: op}, true
}

func (w *Watcher) tracks(path string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.files[path]; ok {
		return true
	}
	_, ok := w.trees[filepath.Dir(path)]
	return ok
}

// directories yields root and every directory below it that the walker would visit.
func directories(root string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				// Unreadable directories are skipped.
				return nil //nolint:nilerr // keep walking siblings
			}
			if !d.IsDir() {
				return nil
			}
			if path != root && qfs.IsSkippedDir(d.Name()) {
				return filepath.SkipDir
			}
			if !yield(path) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}
