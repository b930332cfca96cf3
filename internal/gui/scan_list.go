package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"
)

// ScanList shows the filename keys of the loaded source folder. Selecting an
// entry triggers a redraw of the grid.
type ScanList struct {
	list *widget.List
	keys []string

	selectionHandler func(key string)
}

func NewScanList() *ScanList {
	sl := &ScanList{}

	sl.list = widget.NewList(
		func() int { return len(sl.keys) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			obj.(*widget.Label).SetText(sl.keys[id])
		},
	)
	sl.list.OnSelected = func(id widget.ListItemID) {
		if sl.selectionHandler != nil && id >= 0 && id < len(sl.keys) {
			sl.selectionHandler(sl.keys[id])
		}
	}

	return sl
}

func (sl *ScanList) GetContainer() fyne.CanvasObject {
	return sl.list
}

func (sl *ScanList) SetSelectionHandler(handler func(key string)) {
	sl.selectionHandler = handler
}

// SetKeys replaces the listed keys and clears the selection.
func (sl *ScanList) SetKeys(keys []string) {
	sl.keys = keys
	sl.list.UnselectAll()
	sl.list.Refresh()
}

// SelectFirst selects the first entry if nothing is selected yet, used when
// a segmentation folder arrives before any scan was picked.
func (sl *ScanList) SelectFirst() {
	if len(sl.keys) > 0 {
		sl.list.Select(0)
	}
}
