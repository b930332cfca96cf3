package pipeline

import (
	"errors"

	"nifti-gridview/internal/logger"
	"nifti-gridview/internal/niio"
)

// ExportTask runs a configured writer on a background goroutine.
type ExportTask struct {
	runGuard
	writer *niio.Writer
	events *Events
	logger logger.Logger
}

func NewExportTask(events *Events, log logger.Logger) *ExportTask {
	return &ExportTask{
		events: events,
		logger: log,
	}
}

func (t *ExportTask) Configure(writer *niio.Writer) {
	t.mu.Lock()
	t.writer = writer
	t.mu.Unlock()
}

func (t *ExportTask) Start() error {
	if err := t.tryBegin(); err != nil {
		return err
	}

	t.mu.Lock()
	writer := t.writer
	t.mu.Unlock()

	if writer == nil {
		t.end()
		return errors.New("export task not configured")
	}

	go t.run(writer)
	return nil
}

func (t *ExportTask) run(writer *niio.Writer) {
	defer t.end()

	err := writer.Write(
		func(p int) { t.events.Publish(Event{Type: EventProgress, Task: "export", Progress: p}) },
		func(s string) { t.events.Publish(Event{Type: EventStatus, Task: "export", Status: s}) },
	)
	if err != nil {
		t.logger.Error("ExportTask", err, nil)
		t.events.Publish(Event{Type: EventFailed, Task: "export", Err: err})
		return
	}

	t.events.Publish(Event{Type: EventDone, Task: "export"})
}
