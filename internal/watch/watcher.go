// Package watch re-runs an action whenever a file is written.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bft-labs/weathering/pkg/log"
)

// DefaultDebounce is the delay used when New is given a non-positive one.
const DefaultDebounce = 100 * time.Millisecond

// Action is invoked once at start and again after every debounced change.
type Action func(ctx context.Context) error

// Watcher monitors a single file via its parent directory so that editors
// replacing the file with a rename are still observed.
type Watcher struct {
	path     string
	debounce time.Duration
	logger   log.Logger

	mu      sync.Mutex
	timer   *time.Timer
	trigger chan struct{}
}

// New creates a watcher for path. A nil logger discards output.
func New(path string, debounce time.Duration, logger log.Logger) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &Watcher{
		path:     path,
		debounce: debounce,
		logger:   logger,
		trigger:  make(chan struct{}, 1),
	}
}

// Path returns the watched file.
func (w *Watcher) Path() string {
	return w.path
}

// Run calls action once, then again each time the file is written or
// created, until ctx is cancelled. Action errors are logged and do not stop
// the loop. Runs never overlap.
func (w *Watcher) Run(ctx context.Context, action Action) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(w.path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	defer w.stopTimer()

	w.runAction(ctx, action)

	name := filepath.Base(w.path)
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			w.schedule()

		case <-w.trigger:
			w.logger.Info("config changed, re-running", log.String("path", w.path))
			w.runAction(ctx, action)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", log.Err(err))
		}
	}
}

func (w *Watcher) runAction(ctx context.Context, action Action) {
	if err := action(ctx); err != nil && ctx.Err() == nil {
		w.logger.Error("run failed", log.Err(err))
	}
}

func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		select {
		case w.trigger <- struct{}{}:
		default:
		}
	})
}

func (w *Watcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
}
