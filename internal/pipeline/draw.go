package pipeline

import (
	"errors"
	"fmt"
	"image/color"

	"nifti-gridview/internal/logger"
	"nifti-gridview/internal/niio"
	"nifti-gridview/internal/render"
)

// DrawConfig is the full configuration for one composition run. It is copied
// at Start so mutating it afterwards cannot affect an in-flight draw.
type DrawConfig struct {
	Key        string
	Source     *niio.Reader
	Masks      []*niio.Reader
	MaskColors []color.RGBA
	Options    render.Options
	Thickness  int

	// UseRange restricts the displayed depth slices to [RangeLo, RangeHi]
	// inclusive before composition.
	UseRange bool
	RangeLo  int
	RangeHi  int
}

// DrawTask composes the grid for one selected volume on a background
// goroutine and publishes the result.
type DrawTask struct {
	runGuard
	cfg    DrawConfig
	events *Events
	logger logger.Logger
}

func NewDrawTask(events *Events, log logger.Logger) *DrawTask {
	return &DrawTask{
		events: events,
		logger: log,
	}
}

func (t *DrawTask) Configure(cfg DrawConfig) {
	t.mu.Lock()
	t.cfg = cfg
	t.mu.Unlock()
}

// Config returns a copy of the current configuration, used by the export
// path to reuse the on-screen drawing settings.
func (t *DrawTask) Config() DrawConfig {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cfg
}

func (t *DrawTask) Start() error {
	if err := t.tryBegin(); err != nil {
		return err
	}

	t.mu.Lock()
	cfg := t.cfg
	t.mu.Unlock()

	if cfg.Source == nil || cfg.Key == "" {
		t.end()
		return errors.New("draw task not configured")
	}

	go t.run(cfg)
	return nil
}

func (t *DrawTask) run(cfg DrawConfig) {
	defer t.end()

	vol, err := cfg.Source.At(cfg.Key)
	if err != nil {
		t.fail(fmt.Errorf("%w: %v", render.ErrInvalidConfig, err))
		return
	}

	if cfg.UseRange {
		ranged, err := vol.SubRange(cfg.RangeLo, cfg.RangeHi)
		if err != nil {
			t.fail(fmt.Errorf("%w: %v", render.ErrInvalidConfig, err))
			return
		}
		vol = ranged
	}

	img, err := render.ComposeGrid(vol, cfg.Options)
	if err != nil {
		t.fail(err)
		return
	}

	for i, maskReader := range cfg.Masks {
		mask, err := maskReader.At(cfg.Key)
		if err != nil {
			t.events.Publish(Event{
				Type:   EventStatus,
				Task:   "draw",
				Status: "No segmentation for " + cfg.Key,
			})
			continue
		}

		if cfg.UseRange {
			mask, err = mask.SubRange(cfg.RangeLo, cfg.RangeHi)
			if err != nil {
				t.fail(fmt.Errorf("%w: %v", render.ErrShapeMismatch, err))
				return
			}
		}

		c := color.RGBA{R: 255, G: 255, B: 0, A: 255}
		if i < len(cfg.MaskColors) {
			c = cfg.MaskColors[i]
		}

		img, err = render.DrawContourOverlay(img, mask, c, cfg.Thickness, cfg.Options)
		if err != nil {
			// Keep the base grid but surface the failure.
			t.logger.Warning("DrawTask", "contour overlay failed", map[string]interface{}{
				"key":   cfg.Key,
				"error": err.Error(),
			})
			t.events.Publish(Event{
				Type:   EventStatus,
				Task:   "draw",
				Status: "Contour overlay failed for " + cfg.Key,
			})
		}
	}

	t.events.Publish(Event{Type: EventDone, Task: "draw", Image: img})
}

func (t *DrawTask) fail(err error) {
	t.logger.Error("DrawTask", err, nil)
	t.events.Publish(Event{Type: EventFailed, Task: "draw", Err: err})
}
