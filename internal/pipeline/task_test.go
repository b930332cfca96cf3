package pipeline

import (
	"encoding/binary"
	"errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"nifti-gridview/internal/logger"
	"nifti-gridview/internal/niio"
	"nifti-gridview/internal/render"
)

func testLogger() logger.Logger {
	return logger.NewZerolog(io.Discard, zerolog.Disabled)
}

// writeNiiFile writes a minimal little-endian float32 NIfTI-1 file.
func writeNiiFile(t *testing.T, path string, depth, height, width int, values []float64) {
	t.Helper()

	buf := make([]byte, 348+len(values)*4)
	binary.LittleEndian.PutUint32(buf[0:], 348)
	binary.LittleEndian.PutUint16(buf[40:], 3)
	binary.LittleEndian.PutUint16(buf[42:], uint16(width))
	binary.LittleEndian.PutUint16(buf[44:], uint16(height))
	binary.LittleEndian.PutUint16(buf[46:], uint16(depth))
	binary.LittleEndian.PutUint16(buf[70:], 16)
	binary.LittleEndian.PutUint16(buf[72:], 32)
	binary.LittleEndian.PutUint32(buf[108:], math.Float32bits(348))
	copy(buf[344:], "n+1\x00")
	for i, v := range values {
		binary.LittleEndian.PutUint32(buf[348+i*4:], math.Float32bits(float32(v)))
	}

	if err := os.WriteFile(path, buf, 0644); err != nil {
		t.Fatal(err)
	}
}

func testReader(t *testing.T) *niio.Reader {
	t.Helper()

	dir := t.TempDir()
	values := make([]float64, 4*6*6)
	for i := range values {
		values[i] = float64(i % 9)
	}
	writeNiiFile(t, filepath.Join(dir, "scan.nii"), 4, 6, 6, values)

	reader, err := niio.NewReader(niio.ReaderConfig{Root: dir}, testLogger())
	if err != nil {
		t.Fatal(err)
	}
	return reader
}

func waitForTerminal(t *testing.T, events *Events) []Event {
	t.Helper()

	var seen []Event
	deadline := time.After(5 * time.Second)
	for {
		select {
		case ev := <-events.C():
			seen = append(seen, ev)
			if ev.Type == EventDone || ev.Type == EventFailed {
				return seen
			}
		case <-deadline:
			t.Fatalf("Timed out waiting for a terminal event, saw %d events", len(seen))
		}
	}
}

// TestRunGuardBusy verifies the one-in-flight rule shared by all tasks
func TestRunGuardBusy(t *testing.T) {
	g := &runGuard{}

	if err := g.tryBegin(); err != nil {
		t.Fatalf("First begin failed: %v", err)
	}
	if !g.Running() {
		t.Error("Expected guard to report running")
	}
	if err := g.tryBegin(); !errors.Is(err, ErrBusy) {
		t.Errorf("Expected ErrBusy, got %v", err)
	}

	g.end()
	if g.Running() {
		t.Error("Expected guard to report idle after end")
	}
	if err := g.tryBegin(); err != nil {
		t.Errorf("Expected begin to succeed after end, got %v", err)
	}
}

// TestLoadTask verifies the event sequence of a successful folder read
func TestLoadTask(t *testing.T) {
	events := NewEvents(64)
	task := NewLoadTask(events, testLogger())

	if err := task.Start(); err == nil {
		t.Error("Expected error for unconfigured task")
	}

	task.Configure(testReader(t))
	if err := task.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	seen := waitForTerminal(t, events)
	last := seen[len(seen)-1]
	if last.Type != EventDone || last.Task != "load" {
		t.Errorf("Expected load EventDone, got %+v", last)
	}

	var sawProgress bool
	for _, ev := range seen {
		if ev.Type == EventProgress && ev.Progress == 100 {
			sawProgress = true
		}
	}
	if !sawProgress {
		t.Error("Expected progress to reach 100")
	}
}

// TestDrawTask verifies composition of the selected key and the attached
// result image
func TestDrawTask(t *testing.T) {
	events := NewEvents(64)
	task := NewDrawTask(events, testLogger())

	task.Configure(DrawConfig{
		Key:     "scan.nii",
		Source:  testReader(t),
		Options: render.Options{Margin: 1},
	})
	if err := task.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	seen := waitForTerminal(t, events)
	last := seen[len(seen)-1]
	if last.Type != EventDone {
		t.Fatalf("Expected EventDone, got %+v", last)
	}
	if last.Image == nil {
		t.Fatal("Expected a composed image on the done event")
	}

	// Depth 4 auto-tiles to a 2x2 grid of 6x6 cells with 1px margins
	if last.Image.Bounds().Dx() != 15 || last.Image.Bounds().Dy() != 15 {
		t.Errorf("Expected 15x15 image, got %v", last.Image.Bounds())
	}
}

// TestDrawTaskUnknownKey verifies the invalid-configuration failure path
func TestDrawTaskUnknownKey(t *testing.T) {
	events := NewEvents(64)
	task := NewDrawTask(events, testLogger())

	task.Configure(DrawConfig{
		Key:    "missing.nii",
		Source: testReader(t),
	})
	if err := task.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	seen := waitForTerminal(t, events)
	last := seen[len(seen)-1]
	if last.Type != EventFailed {
		t.Fatalf("Expected EventFailed, got %+v", last)
	}
	if !errors.Is(last.Err, render.ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", last.Err)
	}
}

// TestDrawTaskConfigCopied verifies mutating the configuration after Start
// does not affect the in-flight run
func TestDrawTaskConfigCopied(t *testing.T) {
	events := NewEvents(64)
	task := NewDrawTask(events, testLogger())

	task.Configure(DrawConfig{
		Key:     "scan.nii",
		Source:  testReader(t),
		Options: render.Options{Margin: 1},
	})
	if err := task.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	task.Configure(DrawConfig{Key: "other.nii"})

	seen := waitForTerminal(t, events)
	if seen[len(seen)-1].Type != EventDone {
		t.Errorf("Expected the original configuration to finish, got %+v", seen[len(seen)-1])
	}
}

// TestExportTask verifies end-to-end export through the task wrapper
func TestExportTask(t *testing.T) {
	events := NewEvents(64)
	task := NewExportTask(events, testLogger())

	reader := testReader(t)
	dest := t.TempDir()
	writer, err := niio.NewWriter(reader, nil, niio.WriterConfig{
		Dest:    dest,
		Format:  "png",
		Options: render.Options{Margin: 1},
	}, testLogger())
	if err != nil {
		t.Fatal(err)
	}

	task.Configure(writer)
	if err := task.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	seen := waitForTerminal(t, events)
	if seen[len(seen)-1].Type != EventDone {
		t.Fatalf("Expected EventDone, got %+v", seen[len(seen)-1])
	}
	if _, err := os.Stat(filepath.Join(dest, "scan.png")); err != nil {
		t.Errorf("Expected exported file: %v", err)
	}
}

// TestEventsDropWhenFull verifies a full buffer never blocks a publisher
func TestEventsDropWhenFull(t *testing.T) {
	events := NewEvents(1)
	events.Publish(Event{Type: EventStatus, Status: "first"})

	done := make(chan struct{})
	go func() {
		events.Publish(Event{Type: EventStatus, Status: "second"})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked on a full buffer")
	}

	ev := <-events.C()
	if ev.Status != "first" {
		t.Errorf("Expected the first event to survive, got %q", ev.Status)
	}
}

// TestEventsClose verifies publishing after Close is a no-op
func TestEventsClose(t *testing.T) {
	events := NewEvents(4)
	events.Close()
	events.Publish(Event{Type: EventStatus}) // must not panic

	if _, ok := <-events.C(); ok {
		t.Error("Expected a closed, drained channel")
	}
}
