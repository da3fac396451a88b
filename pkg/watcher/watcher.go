package watcher

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/Dicklesworthstone/timeline_viewer/pkg/debug"
)

// ErrClosed is returned by Start after Close.
var ErrClosed = errors.New("watcher: closed")

// FileWatcher reports changes to a single file. It watches the parent
// directory so that editors which replace the file by rename are still seen.
type FileWatcher struct {
	path string
	dir  string
	base string

	debouncer *Debouncer
	changes   chan struct{}

	mu      sync.Mutex
	fsw     *fsnotify.Watcher
	closed  bool
	started bool
}

// NewFileWatcher prepares a watcher for path. A zero debounce uses
// DefaultDebounceDuration.
func NewFileWatcher(path string, debounce time.Duration) (*FileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watcher: resolve %s: %w", path, err)
	}
	w := &FileWatcher{
		path:    abs,
		dir:     filepath.Dir(abs),
		base:    filepath.Base(abs),
		changes: make(chan struct{}, 1),
	}
	w.debouncer = NewDebouncer(debounce, w.notify)
	return w, nil
}

// Path returns the absolute path being watched.
func (w *FileWatcher) Path() string {
	return w.path
}

// Changes delivers one value per debounced burst of writes. Bursts that
// arrive while a value is still unread are merged into it.
func (w *FileWatcher) Changes() <-chan struct{} {
	return w.changes
}

// Start begins watching until ctx is cancelled or Close is called.
func (w *FileWatcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return ErrClosed
	}
	if w.started {
		return nil
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watcher: create: %w", err)
	}
	if err := fsw.Add(w.dir); err != nil {
		fsw.Close()
		return fmt.Errorf("watcher: watch %s: %w", w.dir, err)
	}
	w.fsw = fsw
	w.started = true
	debug.Log("watcher: watching %s", w.path)

	go w.loop(ctx, fsw)
	return nil
}

func (w *FileWatcher) loop(ctx context.Context, fsw *fsnotify.Watcher) {
	for {
		select {
		case <-ctx.Done():
			w.Close()
			return
		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			debug.Log("watcher: %v", err)
		case ev, ok := <-fsw.Events:
			if !ok {
				return
			}
			if !w.relevant(ev) {
				continue
			}
			debug.Log("watcher: %s %s", ev.Op, ev.Name)
			w.debouncer.Trigger()
		}
	}
}

// relevant reports whether ev touches the watched file in a way that may
// change its contents.
func (w *FileWatcher) relevant(ev fsnotify.Event) bool {
	if filepath.Base(ev.Name) != w.base {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename)
}

func (w *FileWatcher) notify() {
	select {
	case w.changes <- struct{}{}:
	default:
	}
}

// Close stops watching. It is safe to call more than once.
func (w *FileWatcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	fsw := w.fsw
	w.mu.Unlock()

	w.debouncer.Cancel()
	if fsw == nil {
		return nil
	}
	return fsw.Close()
}
