package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// Toolbar holds the folder and export actions.
type Toolbar struct {
	container    *fyne.Container
	openButton   *widget.Button
	openSegBtn   *widget.Button
	exportButton *widget.Button

	openHandler    func()
	openSegHandler func()
	exportHandler  func()
}

func NewToolbar() *Toolbar {
	toolbar := &Toolbar{}
	toolbar.createComponents()
	toolbar.buildLayout()
	return toolbar
}

func (t *Toolbar) createComponents() {
	t.openButton = widget.NewButton("Open Folder", t.onOpenClicked)
	t.openButton.Importance = widget.HighImportance

	t.openSegBtn = widget.NewButton("Open Segmentation Folder", t.onOpenSegClicked)
	t.openSegBtn.Disable() // Enabled once a source folder is loaded

	t.exportButton = widget.NewButton("Export Images", t.onExportClicked)
	t.exportButton.Disable()
}

func (t *Toolbar) buildLayout() {
	t.container = container.NewHBox(
		t.openButton,
		widget.NewSeparator(),
		t.openSegBtn,
		widget.NewSeparator(),
		t.exportButton,
	)
}

func (t *Toolbar) GetContainer() *fyne.Container {
	return t.container
}

func (t *Toolbar) SetOpenHandler(handler func())    { t.openHandler = handler }
func (t *Toolbar) SetOpenSegHandler(handler func()) { t.openSegHandler = handler }
func (t *Toolbar) SetExportHandler(handler func())  { t.exportHandler = handler }

// EnableFolderActions unlocks the segmentation and export buttons after a
// source folder has been opened.
func (t *Toolbar) EnableFolderActions() {
	t.openSegBtn.Enable()
	t.exportButton.Enable()
}

func (t *Toolbar) onOpenClicked() {
	if t.openHandler != nil {
		t.openHandler()
	}
}

func (t *Toolbar) onOpenSegClicked() {
	if t.openSegHandler != nil {
		t.openSegHandler()
	}
}

func (t *Toolbar) onExportClicked() {
	if t.exportHandler != nil {
		t.exportHandler()
	}
}
