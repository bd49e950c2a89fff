package filestore

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher calls OnChange when the document file for a key is written,
// created or renamed into place by another process. Events are debounced so
// one atomic save triggers a single reload.
type Watcher struct {
	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	path     string
	onChange func(ctx context.Context) error
	log      *zap.Logger
	debounce time.Duration

	stopCh  chan struct{}
	doneCh  chan struct{}
	running bool
}

// NewWatcher watches the file backing key in s.
func NewWatcher(s *Store, key string, onChange func(ctx context.Context) error, log *zap.Logger) (*Watcher, error) {
	if onChange == nil {
		return nil, fmt.Errorf("filestore: onChange is nil")
	}
	if log == nil {
		log = zap.NewNop()
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("filestore: new watcher: %w", err)
	}
	return &Watcher{
		watcher:  w,
		path:     filepath.Clean(s.Path(key)),
		onChange: onChange,
		log:      log,
		debounce: 200 * time.Millisecond,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Start begins watching in a goroutine. The directory is watched rather than
// the file because saves replace the file by rename.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return nil
	}
	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("filestore: watch %s: %w", filepath.Dir(w.path), err)
	}
	w.running = true
	go w.run(ctx)
	w.log.Info("watching project file", zap.String("path", w.path))
	return nil
}

// Stop ends the watch loop and waits for it to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		_ = w.watcher.Close()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh
	if err := w.watcher.Close(); err != nil {
		w.log.Warn("close watcher", zap.Error(err))
	}
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn("watcher error", zap.Error(err))
		case <-fire:
			fire = nil
			if err := w.onChange(ctx); err != nil {
				w.log.Error("reload after file change failed", zap.String("path", w.path), zap.Error(err))
			}
		}
	}
}
