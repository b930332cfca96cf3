package pipeline

import (
	"errors"
	"sync"
)

// ErrBusy is returned when Start is called while a previous run of the same
// task instance has not finished. Tasks never run two instances concurrently.
var ErrBusy = errors.New("task already running")

// runGuard enforces the one-in-flight-run-per-task rule shared by all
// wrappers.
type runGuard struct {
	mu      sync.Mutex
	running bool
}

func (g *runGuard) tryBegin() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.running {
		return ErrBusy
	}
	g.running = true
	return nil
}

func (g *runGuard) end() {
	g.mu.Lock()
	g.running = false
	g.mu.Unlock()
}

// Running reports whether a run is in flight.
func (g *runGuard) Running() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.running
}
