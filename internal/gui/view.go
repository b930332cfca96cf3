// Package gui binds the Fyne widgets of the grid viewer to the background
// pipeline. Widgets are only mutated on the UI thread via fyne.Do.
package gui

import (
	"image"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
)

// View handles all UI components and their layout
type View struct {
	window     fyne.Window
	controller *Controller

	toolbar        *Toolbar
	scanList       *ScanList
	segTable       *SegTable
	parameterPanel *ParameterPanel
	imageDisplay   *ImageDisplay
	statusBar      *StatusBar
	mainContainer  *fyne.Container
}

func NewView(window fyne.Window, defaultColormap string, defaultMargin, defaultThickness int) *View {
	view := &View{
		window:         window,
		toolbar:        NewToolbar(),
		scanList:       NewScanList(),
		segTable:       NewSegTable(),
		parameterPanel: NewParameterPanel(defaultColormap, defaultMargin, defaultThickness),
		imageDisplay:   NewImageDisplay(),
		statusBar:      NewStatusBar(),
	}

	view.setupLayout()
	return view
}

func (v *View) SetController(controller *Controller) {
	v.controller = controller
	v.setupEventHandlers()
}

func (v *View) setupLayout() {
	left := container.NewVSplit(v.scanList.GetContainer(), v.segTable.GetContainer())
	left.SetOffset(0.7)

	v.mainContainer = container.NewBorder(
		v.toolbar.GetContainer(),
		v.statusBar.GetContainer(),
		left,
		v.parameterPanel.GetContainer(),
		v.imageDisplay.GetContainer(),
	)
}

func (v *View) setupEventHandlers() {
	if v.controller == nil {
		return
	}

	v.toolbar.SetOpenHandler(v.controller.OpenFolder)
	v.toolbar.SetOpenSegHandler(v.controller.OpenSegmentationFolder)
	v.toolbar.SetExportHandler(v.controller.ExportImages)

	v.scanList.SetSelectionHandler(v.controller.SelectScan)
	v.segTable.SetColorPickHandler(v.controller.PickMaskColor)
	v.parameterPanel.SetChangeHandler(v.controller.ParametersChanged)
}

func (v *View) GetMainContainer() *fyne.Container {
	return v.mainContainer
}

func (v *View) SetGridImage(img image.Image) {
	v.imageDisplay.SetImage(img)
}

func (v *View) SetStatus(status string) {
	v.statusBar.SetStatus(status)
}

func (v *View) SetProgress(percent int) {
	v.statusBar.SetProgress(percent)
}

func (v *View) ShowError(err error) {
	dialog.ShowError(err, v.window)
}

func (v *View) ShowFolderDialog(callback func(path string)) {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		callback(uri.Path())
	}, v.window)
}

func (v *View) ShowColorDialog(callback func(c color.Color)) {
	dialog.ShowColorPicker("Outline Color", "Pick the contour color", callback, v.window)
}

func (v *View) Show() {
	v.window.SetContent(v.mainContainer)
	v.window.Show()
}
