package pipeline

import (
	"errors"

	"nifti-gridview/internal/logger"
	"nifti-gridview/internal/niio"
)

// LoadTask reads every volume of a folder on a background goroutine.
type LoadTask struct {
	runGuard
	reader *niio.Reader
	events *Events
	logger logger.Logger
}

func NewLoadTask(events *Events, log logger.Logger) *LoadTask {
	return &LoadTask{
		events: events,
		logger: log,
	}
}

// Configure sets the reader for the next run. Calling it while a run is in
// flight does not affect that run.
func (t *LoadTask) Configure(reader *niio.Reader) {
	t.mu.Lock()
	t.reader = reader
	t.mu.Unlock()
}

// Start launches the read. A second Start while one is running returns
// ErrBusy. There is no cancellation; the run finishes or fails.
func (t *LoadTask) Start() error {
	if err := t.tryBegin(); err != nil {
		return err
	}

	t.mu.Lock()
	reader := t.reader
	t.mu.Unlock()

	if reader == nil {
		t.end()
		return errors.New("load task not configured")
	}

	go t.run(reader)
	return nil
}

func (t *LoadTask) run(reader *niio.Reader) {
	defer t.end()

	err := reader.ReadAll(
		func(p int) { t.events.Publish(Event{Type: EventProgress, Task: "load", Progress: p}) },
		func(s string) { t.events.Publish(Event{Type: EventStatus, Task: "load", Status: s}) },
	)
	if err != nil {
		t.logger.Error("LoadTask", err, map[string]interface{}{"root": reader.Root()})
		t.events.Publish(Event{Type: EventFailed, Task: "load", Err: err})
		return
	}

	t.events.Publish(Event{Type: EventDone, Task: "load"})
}
