// internal/app/system/workers/seedwatch.go
package workers

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/dalemusser/casehub/internal/app/resources/seed"
	"github.com/dalemusser/casehub/internal/app/system/hub"
	"github.com/dalemusser/casehub/internal/app/system/metrics"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce is how long the watcher waits after the last change to
// the seed file before reloading it.
const DefaultDebounce = 500 * time.Millisecond

// SeedWatcher is a background worker that reloads the hub state whenever
// the seed file on disk changes.
type SeedWatcher struct {
	path     string
	hub      *hub.Hub
	log      *zap.Logger
	debounce time.Duration

	watcher *fsnotify.Watcher
	stopCh  chan struct{}
	wg      sync.WaitGroup
	once    sync.Once

	// OnReload, if set, is called after every reload attempt.
	OnReload func(error)
}

// NewSeedWatcher creates a watcher for the seed file at path. A debounce of
// zero selects DefaultDebounce.
func NewSeedWatcher(path string, h *hub.Hub, logger *zap.Logger, debounce time.Duration) *SeedWatcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &SeedWatcher{
		path:     filepath.Clean(path),
		hub:      h,
		log:      logger,
		debounce: debounce,
		stopCh:   make(chan struct{}),
	}
}

// Start begins watching. The parent directory is watched rather than the
// file itself so editors that save by rename are still picked up.
func (w *SeedWatcher) Start() error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create seed watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		fw.Close()
		return fmt.Errorf("watch %s: %w", filepath.Dir(w.path), err)
	}
	w.watcher = fw
	w.wg.Add(1)
	go w.run()
	w.log.Info("seed watcher started",
		zap.String("path", w.path),
		zap.Duration("debounce", w.debounce))
	return nil
}

// Stop signals the worker to stop and waits for it to finish. It is safe
// to call more than once.
func (w *SeedWatcher) Stop() {
	w.once.Do(func() {
		close(w.stopCh)
		if w.watcher != nil {
			w.watcher.Close()
		}
		w.wg.Wait()
		w.log.Info("seed watcher stopped")
	})
}

func (w *SeedWatcher) run() {
	defer w.wg.Done()

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
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
			timer.Reset(w.debounce)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn("seed watcher error", zap.Error(err))
		case <-timer.C:
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			err := w.Reload(ctx)
			cancel()
			if w.OnReload != nil {
				w.OnReload(err)
			}
		}
	}
}

// Reload parses the seed file and swaps it into the hub. A file that fails
// to parse leaves the current state untouched.
func (w *SeedWatcher) Reload(ctx context.Context) error {
	s, err := seed.Load(w.path, time.Now())
	if err != nil {
		metrics.SeedReloads.WithLabelValues("error").Inc()
		w.log.Error("seed reload failed", zap.String("path", w.path), zap.Error(err))
		return err
	}
	for _, p := range seed.Validate(s) {
		w.log.Warn("seed integrity", zap.String("problem", p.String()))
	}

	err = w.hub.Do(ctx, func(st *hub.State) error {
		st.Load(s.Catalog, s.Contributors, s.Cases)
		return nil
	})
	if err != nil {
		metrics.SeedReloads.WithLabelValues("error").Inc()
		w.log.Error("seed reload failed", zap.String("path", w.path), zap.Error(err))
		return err
	}
	metrics.SeedReloads.WithLabelValues("ok").Inc()
	w.log.Info("seed reloaded",
		zap.String("path", w.path),
		zap.Int("cases", len(s.Cases)),
		zap.Int("contributors", len(s.Contributors)))
	return nil
}
