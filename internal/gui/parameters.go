package gui

import (
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"nifti-gridview/internal/render"
)

// ParameterPanel holds the grid drawing controls. Every change rebuilds the
// display configuration and triggers a redraw; nothing here persists.
type ParameterPanel struct {
	container *fyne.Container

	colormapSelect *widget.Select
	autoColsCheck  *widget.Check
	colsEntry      *widget.Entry
	useRangeCheck  *widget.Check
	rangeLoEntry   *widget.Entry
	rangeHiEntry   *widget.Entry
	offsetEntry    *widget.Entry
	marginEntry    *widget.Entry
	thicknessEntry *widget.Entry

	changeHandler func()
	suppress      bool
}

func NewParameterPanel(defaultColormap string, defaultMargin, defaultThickness int) *ParameterPanel {
	p := &ParameterPanel{}
	p.createComponents(defaultColormap, defaultMargin, defaultThickness)
	p.buildLayout()
	return p
}

func (p *ParameterPanel) createComponents(defaultColormap string, defaultMargin, defaultThickness int) {
	p.colormapSelect = widget.NewSelect(render.ColormapNames(), func(string) { p.onChanged() })
	p.colormapSelect.SetSelected(defaultColormap)

	p.colsEntry = newIntEntry("4", p.onChanged)
	p.colsEntry.Disable()
	p.autoColsCheck = widget.NewCheck("Auto columns", func(checked bool) {
		if checked {
			p.colsEntry.Disable()
		} else {
			p.colsEntry.Enable()
		}
		p.onChanged()
	})
	p.autoColsCheck.SetChecked(true)

	p.rangeLoEntry = newIntEntry("0", p.onChanged)
	p.rangeHiEntry = newIntEntry("0", p.onChanged)
	p.rangeLoEntry.Disable()
	p.rangeHiEntry.Disable()
	p.useRangeCheck = widget.NewCheck("Use depth range", func(checked bool) {
		if checked {
			p.rangeLoEntry.Enable()
			p.rangeHiEntry.Enable()
		} else {
			p.rangeLoEntry.Disable()
			p.rangeHiEntry.Disable()
		}
		p.onChanged()
	})

	p.offsetEntry = newIntEntry("0", p.onChanged)
	p.marginEntry = newIntEntry(strconv.Itoa(defaultMargin), p.onChanged)
	p.thicknessEntry = newIntEntry(strconv.Itoa(defaultThickness), p.onChanged)
}

func (p *ParameterPanel) buildLayout() {
	p.container = container.NewVBox(
		widget.NewLabel("Display"),
		widget.NewForm(
			widget.NewFormItem("Colormap", p.colormapSelect),
			widget.NewFormItem("", p.autoColsCheck),
			widget.NewFormItem("Columns", p.colsEntry),
			widget.NewFormItem("", p.useRangeCheck),
			widget.NewFormItem("Range low", p.rangeLoEntry),
			widget.NewFormItem("Range high", p.rangeHiEntry),
			widget.NewFormItem("Offset", p.offsetEntry),
			widget.NewFormItem("Margin", p.marginEntry),
			widget.NewFormItem("Thickness", p.thicknessEntry),
		),
	)
}

func (p *ParameterPanel) GetContainer() *fyne.Container {
	return p.container
}

func (p *ParameterPanel) SetChangeHandler(handler func()) {
	p.changeHandler = handler
}

func (p *ParameterPanel) onChanged() {
	if p.changeHandler != nil && !p.suppress {
		p.changeHandler()
	}
}

// Options assembles the render configuration from the current widget state.
// The background fill value comes from the application config.
func (p *ParameterPanel) Options(background uint8) render.Options {
	opts := render.Options{
		Offset:     intValue(p.offsetEntry, 0),
		Margin:     intValue(p.marginEntry, 1),
		Background: background,
		Colormap:   p.colormapSelect.Selected,
	}
	if !p.autoColsCheck.Checked {
		opts.Columns = intValue(p.colsEntry, 0)
	}
	return opts
}

func (p *ParameterPanel) Thickness() int {
	t := intValue(p.thicknessEntry, 2)
	if t <= 0 {
		t = 2
	}
	return t
}

// DepthRange reports the depth-range restriction; ok is false when the
// checkbox is off.
func (p *ParameterPanel) DepthRange() (lo, hi int, ok bool) {
	if !p.useRangeCheck.Checked {
		return 0, 0, false
	}
	return intValue(p.rangeLoEntry, 0), intValue(p.rangeHiEntry, 0), true
}

// SetDepthBounds seeds the range entries from the selected volume when the
// range checkbox is off.
func (p *ParameterPanel) SetDepthBounds(depth int) {
	if p.useRangeCheck.Checked || depth <= 0 {
		return
	}
	// Reset without retriggering a redraw.
	p.suppress = true
	p.rangeLoEntry.SetText("0")
	p.rangeHiEntry.SetText(strconv.Itoa(depth - 1))
	p.suppress = false
}

func newIntEntry(initial string, onChanged func()) *widget.Entry {
	entry := widget.NewEntry()
	entry.SetText(initial)
	entry.OnChanged = func(string) { onChanged() }
	return entry
}

func intValue(entry *widget.Entry, fallback int) int {
	v, err := strconv.Atoi(entry.Text)
	if err != nil {
		return fallback
	}
	return v
}
