package gui

import (
	"errors"
	"image/color"
	"path/filepath"

	"fyne.io/fyne/v2"

	"nifti-gridview/internal/config"
	"nifti-gridview/internal/logger"
	"nifti-gridview/internal/niio"
	"nifti-gridview/internal/pipeline"
)

// Controller owns the readers and background tasks and applies their events
// back to the view.
type Controller struct {
	view   *View
	cfg    *config.Config
	logger logger.Logger

	events     *pipeline.Events
	loadTask   *pipeline.LoadTask
	drawTask   *pipeline.DrawTask
	exportTask *pipeline.ExportTask

	sourceReader *niio.Reader
	maskReaders  []*niio.Reader
	activeKey    string
}

func NewController(view *View, cfg *config.Config, log logger.Logger) *Controller {
	events := pipeline.NewEvents(64)

	c := &Controller{
		view:       view,
		cfg:        cfg,
		logger:     log,
		events:     events,
		loadTask:   pipeline.NewLoadTask(events, log),
		drawTask:   pipeline.NewDrawTask(events, log),
		exportTask: pipeline.NewExportTask(events, log),
	}

	view.SetController(c)
	go c.drainEvents()

	return c
}

// drainEvents applies background task notifications to the view. All widget
// mutation goes through fyne.Do.
func (c *Controller) drainEvents() {
	for ev := range c.events.C() {
		ev := ev
		fyne.Do(func() { c.applyEvent(ev) })
	}
}

func (c *Controller) applyEvent(ev pipeline.Event) {
	switch ev.Type {
	case pipeline.EventProgress:
		c.view.SetProgress(ev.Progress)
	case pipeline.EventStatus:
		c.view.SetStatus(ev.Status)
	case pipeline.EventDone:
		c.view.SetProgress(100)
		switch ev.Task {
		case "draw":
			if ev.Image != nil {
				c.view.SetGridImage(ev.Image)
			}
		case "load", "export":
			c.view.SetStatus("Ready.")
		}
	case pipeline.EventFailed:
		c.view.SetStatus(taskFailureMessage(ev.Task))
		c.logger.Error("Controller", ev.Err, map[string]interface{}{"task": ev.Task})
	}
}

func taskFailureMessage(task string) string {
	switch task {
	case "load":
		return "Reader encountered an error."
	case "draw":
		return "Wrong drawing configuration."
	case "export":
		return "Writer encountered an error."
	default:
		return "Encountered an error."
	}
}

// OpenFolder scans a source folder and loads its volumes in the background.
func (c *Controller) OpenFolder() {
	c.view.ShowFolderDialog(func(path string) {
		reader, err := niio.NewReader(niio.ReaderConfig{Root: path}, c.logger)
		if err != nil {
			c.view.ShowError(err)
			return
		}

		c.sourceReader = reader
		c.activeKey = ""
		c.view.scanList.SetKeys(reader.Keys())
		c.view.toolbar.EnableFolderActions()

		c.loadTask.Configure(reader)
		if err := c.loadTask.Start(); err != nil {
			c.view.ShowError(err)
		}
	})
}

// OpenSegmentationFolder adds a mask reader; its volumes load lazily on
// first draw.
func (c *Controller) OpenSegmentationFolder() {
	c.view.ShowFolderDialog(func(path string) {
		reader, err := niio.NewReader(niio.ReaderConfig{Root: path, Labels: true}, c.logger)
		if err != nil {
			c.view.ShowError(err)
			return
		}

		c.maskReaders = append(c.maskReaders, reader)
		c.view.segTable.AddRow(filepath.Base(path))

		if c.activeKey == "" {
			c.view.scanList.SelectFirst()
		} else {
			c.redraw()
		}
	})
}

// SelectScan is bound to scan list selection changes.
func (c *Controller) SelectScan(key string) {
	c.activeKey = key

	if vol, err := c.sourceReader.At(key); err == nil {
		c.view.parameterPanel.SetDepthBounds(vol.Depth)
	}

	c.redraw()
}

// ParametersChanged is bound to every display control change.
func (c *Controller) ParametersChanged() {
	if c.activeKey != "" {
		c.redraw()
	}
}

// PickMaskColor opens the color dialog for a segmentation row.
func (c *Controller) PickMaskColor(row int) {
	c.view.ShowColorDialog(func(picked color.Color) {
		r, g, b, _ := picked.RGBA()
		c.view.segTable.SetRowColor(row, color.RGBA{
			R: uint8(r >> 8),
			G: uint8(g >> 8),
			B: uint8(b >> 8),
			A: 255,
		})
		c.redraw()
	})
}

func (c *Controller) redraw() {
	if c.sourceReader == nil || c.activeKey == "" {
		return
	}

	c.drawTask.Configure(c.drawConfig())
	if err := c.drawTask.Start(); err != nil {
		if errors.Is(err, pipeline.ErrBusy) {
			// The in-flight draw finishes with the previous configuration;
			// the next interaction picks the new one up.
			c.view.SetStatus("Drawing in progress...")
			return
		}
		c.view.ShowError(err)
	}
}

func (c *Controller) drawConfig() pipeline.DrawConfig {
	cfg := pipeline.DrawConfig{
		Key:        c.activeKey,
		Source:     c.sourceReader,
		Masks:      c.maskReaders,
		MaskColors: c.view.segTable.Colors(),
		Options:    c.view.parameterPanel.Options(c.cfg.Display.Background),
		Thickness:  c.view.parameterPanel.Thickness(),
	}
	if lo, hi, ok := c.view.parameterPanel.DepthRange(); ok {
		cfg.UseRange = true
		cfg.RangeLo = lo
		cfg.RangeHi = hi
	}
	return cfg
}

// ExportImages writes one composed image per source volume with the current
// display configuration.
func (c *Controller) ExportImages() {
	if c.sourceReader == nil || c.sourceReader.Len() == 0 {
		c.view.ShowError(errors.New("please open a source image folder first"))
		return
	}
	if c.exportTask.Running() {
		c.view.ShowError(errors.New("export in progress already"))
		return
	}

	c.view.ShowFolderDialog(func(dest string) {
		writer, err := niio.NewWriter(c.sourceReader, c.maskReaders, niio.WriterConfig{
			Dest:      dest,
			Format:    c.cfg.Export.Format,
			Options:   c.view.parameterPanel.Options(c.cfg.Display.Background),
			Thickness: c.view.parameterPanel.Thickness(),
			Colors:    c.view.segTable.Colors(),
		}, c.logger)
		if err != nil {
			c.view.ShowError(err)
			return
		}

		c.exportTask.Configure(writer)
		if err := c.exportTask.Start(); err != nil {
			c.view.ShowError(err)
		}
	})
}

// Shutdown closes the event channel, ending the drain goroutine.
func (c *Controller) Shutdown() {
	c.events.Close()
}
