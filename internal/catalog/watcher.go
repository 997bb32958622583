package catalog

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"jordanella.com/language-gates/internal/lessons"
	"jordanella.com/language-gates/internal/logging"
	"jordanella.com/language-gates/internal/storage"
)

// ChangeFunc receives the reloaded catalog, or the error that prevented
// reloading it, after a catalog file changes on disk
type ChangeFunc func(code string, cat *lessons.Catalog, err error)

// Watcher reloads catalogs when their files are edited outside the app
type Watcher struct {
	store    *Store
	files    *storage.FileStore
	onChange ChangeFunc
	logger   *logging.Logger

	watcher  *fsnotify.Watcher
	debounce time.Duration

	mu      sync.Mutex
	pending map[string]time.Time
	running bool

	stopCh    chan struct{}
	doneCh    chan struct{}
	closeOnce sync.Once
}

// WatcherOption configures a Watcher
type WatcherOption func(*Watcher)

// WithDebounce sets how long a file must be quiet before it is reloaded
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// WithWatcherLogger sets the watcher logger
func WithWatcherLogger(logger *logging.Logger) WatcherOption {
	return func(w *Watcher) {
		w.logger = logger
	}
}

// NewWatcher creates a watcher for the directory behind files. store must
// read from the same FileStore.
func NewWatcher(store *Store, files *storage.FileStore, onChange ChangeFunc, opts ...WatcherOption) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	w := &Watcher{
		store:    store,
		files:    files,
		onChange: onChange,
		watcher:  fw,
		debounce: 300 * time.Millisecond,
		pending:  make(map[string]time.Time),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.logger == nil {
		w.logger = logging.NewLogger("CatalogWatcher")
	}
	return w, nil
}

// Start begins watching. It returns once the directory is registered; events
// are handled on a background goroutine until Stop or ctx is done.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return nil
	}

	if err := os.MkdirAll(w.files.Dir(), 0755); err != nil {
		return fmt.Errorf("failed to create catalog directory: %w", err)
	}
	if err := w.watcher.Add(w.files.Dir()); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.files.Dir(), err)
	}

	w.logger.InfoWithContext("Watching catalogs", map[string]interface{}{"dir": w.files.Dir()})

	w.running = true
	go w.run(ctx)
	return nil
}

// Stop ends the event loop and releases the underlying watcher. It is safe
// to call more than once and without Start.
func (w *Watcher) Stop() {
	w.mu.Lock()
	wasRunning := w.running
	w.running = false
	w.mu.Unlock()

	w.closeOnce.Do(func() {
		close(w.stopCh)
		if wasRunning {
			<-w.doneCh
		}
		if err := w.watcher.Close(); err != nil {
			w.logger.Error("Failed to close file watcher", err)
		}
	})
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	ticker := time.NewTicker(w.tick())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("File watcher error", err)
		case now := <-ticker.C:
			w.flush(now)
		}
	}
}

func (w *Watcher) tick() time.Duration {
	t := w.debounce / 2
	if t < 10*time.Millisecond {
		t = 10 * time.Millisecond
	}
	return t
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	key, ok := w.files.KeyForPath(event.Name)
	if !ok {
		return
	}
	if _, ok := CodeFromKey(key); !ok {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	switch {
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		// A deleted catalog is not reloaded; Load would write the default back.
		delete(w.pending, key)
	case event.Has(fsnotify.Write), event.Has(fsnotify.Create):
		w.pending[key] = time.Now()
	}
}

func (w *Watcher) flush(now time.Time) {
	var ready []string

	w.mu.Lock()
	for key, last := range w.pending {
		if now.Sub(last) >= w.debounce {
			ready = append(ready, key)
			delete(w.pending, key)
		}
	}
	w.mu.Unlock()

	for _, key := range ready {
		exists, err := w.files.Exists(key)
		if err != nil {
			w.logger.ErrorWithContext("Failed to check catalog", err, map[string]interface{}{"key": key})
			continue
		}
		if !exists {
			w.logger.DebugWithContext("Catalog removed before reload", map[string]interface{}{"key": key})
			continue
		}

		code, _ := CodeFromKey(key)
		cat, err := w.store.Load(code)
		if err != nil {
			w.logger.ErrorWithContext("Failed to reload catalog", err, map[string]interface{}{"key": key})
		} else {
			w.logger.InfoWithContext("Reloaded catalog", map[string]interface{}{"key": key})
		}
		if w.onChange != nil {
			w.onChange(code, cat, err)
		}
	}
}
