package gui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// defaultMaskColor is the outline color assigned to a newly added
// segmentation folder until the user picks another one.
var defaultMaskColor = color.RGBA{R: 255, G: 255, B: 0, A: 255}

type segRow struct {
	name   string
	color  color.RGBA
	swatch *canvas.Rectangle
}

// SegTable lists the loaded segmentation folders with their outline colors.
// Each row carries a color swatch; picking a new color triggers a redraw.
type SegTable struct {
	box  *fyne.Container
	rows []*segRow

	colorPickHandler func(row int)
}

func NewSegTable() *SegTable {
	st := &SegTable{}
	st.box = container.NewVBox(widget.NewLabel("Segmentations"))
	return st
}

func (st *SegTable) GetContainer() fyne.CanvasObject {
	return st.box
}

func (st *SegTable) SetColorPickHandler(handler func(row int)) {
	st.colorPickHandler = handler
}

// AddRow appends a segmentation folder entry with the default outline color
// and returns its row index.
func (st *SegTable) AddRow(name string) int {
	idx := len(st.rows)

	swatch := canvas.NewRectangle(defaultMaskColor)
	swatch.SetMinSize(fyne.NewSize(24, 24))

	row := &segRow{
		name:   name,
		color:  defaultMaskColor,
		swatch: swatch,
	}
	st.rows = append(st.rows, row)

	pick := widget.NewButton("Color", func() {
		if st.colorPickHandler != nil {
			st.colorPickHandler(idx)
		}
	})

	st.box.Add(container.NewHBox(swatch, pick, widget.NewLabel(name)))
	st.box.Refresh()

	return idx
}

// SetRowColor updates a row's outline color and its swatch.
func (st *SegTable) SetRowColor(row int, c color.RGBA) {
	if row < 0 || row >= len(st.rows) {
		return
	}
	st.rows[row].color = c
	st.rows[row].swatch.FillColor = c
	st.rows[row].swatch.Refresh()
}

// Colors returns the outline color per row in order.
func (st *SegTable) Colors() []color.RGBA {
	colors := make([]color.RGBA, len(st.rows))
	for i, row := range st.rows {
		colors[i] = row.color
	}
	return colors
}

func (st *SegTable) Len() int {
	return len(st.rows)
}
