// internal/app/system/hub/hub.go
package hub

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
)

// ErrStopped is returned by Do and View once the hub has stopped (or before
// it has started).
var ErrStopped = errors.New("hub is not running")

type command struct {
	fn   func(*State) error
	done chan error
}

// Hub owns State and applies commands to it one at a time on a single
// goroutine. Handlers never hold State outside a command.
type Hub struct {
	state *State
	log   *zap.Logger

	cmds   chan command
	stopCh chan struct{}
	wg     sync.WaitGroup

	mu      sync.Mutex
	running bool
}

// New creates a hub around st. Call Start before sending commands.
func New(st *State, logger *zap.Logger) *Hub {
	return &Hub{
		state:  st,
		log:    logger,
		cmds:   make(chan command),
		stopCh: make(chan struct{}),
	}
}

// Start launches the actor goroutine. Calling Start twice is a no-op.
func (h *Hub) Start() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.running {
		return
	}
	h.running = true
	h.wg.Add(1)
	go h.run()
	h.log.Info("state hub started")
}

// Stop signals the actor to exit and waits for it. Commands already
// accepted finish first.
func (h *Hub) Stop() {
	h.mu.Lock()
	if !h.running {
		h.mu.Unlock()
		return
	}
	h.running = false
	close(h.stopCh)
	h.mu.Unlock()

	h.wg.Wait()
	h.log.Info("state hub stopped")
}

func (h *Hub) run() {
	defer h.wg.Done()
	for {
		select {
		case <-h.stopCh:
			return
		case cmd := <-h.cmds:
			cmd.done <- h.exec(cmd.fn)
		}
	}
}

func (h *Hub) exec(fn func(*State) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			h.log.Error("panic in hub command", zap.Any("panic", r))
			err = errors.New("internal error")
		}
	}()
	return fn(h.state)
}

// Do runs fn on the actor goroutine and returns its error. If ctx ends
// before the command is accepted, fn never runs. Once accepted, Do waits
// for fn to finish, so a nil error always means fn's changes are applied.
func (h *Hub) Do(ctx context.Context, fn func(*State) error) error {
	h.mu.Lock()
	running := h.running
	h.mu.Unlock()
	if !running {
		return ErrStopped
	}

	cmd := command{fn: fn, done: make(chan error, 1)}
	select {
	case h.cmds <- cmd:
	case <-h.stopCh:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
	return <-cmd.done
}

// View runs a read-only fn on the actor goroutine. It is Do by another
// name; the split documents intent at call sites.
func (h *Hub) View(ctx context.Context, fn func(*State) error) error {
	return h.Do(ctx, fn)
}
