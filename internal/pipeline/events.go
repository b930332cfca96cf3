// Package pipeline runs folder reading, grid composition and image export on
// background goroutines and publishes their progress to the GUI as discrete
// events instead of touching widgets directly.
package pipeline

import (
	"image"
	"sync"
)

type EventType int

const (
	// EventProgress carries an advisory integer 0-100.
	EventProgress EventType = iota

	// EventStatus carries a human-readable status message.
	EventStatus

	// EventDone signals task completion; draw tasks attach the composed
	// image.
	EventDone

	// EventFailed signals task failure with the typed error attached.
	EventFailed
)

// Event is one notification from a background task.
type Event struct {
	Type     EventType
	Task     string
	Progress int
	Status   string
	Image    *image.RGBA
	Err      error
}

// Events is the buffered channel tasks publish to and the GUI drains. When
// the buffer is full the event is dropped so a slow consumer can never block
// a task.
type Events struct {
	mu     sync.Mutex
	ch     chan Event
	closed bool
}

func NewEvents(buffer int) *Events {
	return &Events{ch: make(chan Event, buffer)}
}

func (e *Events) C() <-chan Event {
	return e.ch
}

func (e *Events) Publish(ev Event) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return
	}

	select {
	case e.ch <- ev:
	default:
		// Drop event if buffer full to prevent blocking
	}
}

func (e *Events) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.closed {
		e.closed = true
		close(e.ch)
	}
}
