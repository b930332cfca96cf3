package gui

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
)

const (
	ImageAreaWidth  = 700
	ImageAreaHeight = 600
)

// ImageDisplay renders the composed grid for the selected volume.
type ImageDisplay struct {
	gridImage *canvas.Image
}

func NewImageDisplay() *ImageDisplay {
	display := &ImageDisplay{}

	display.gridImage = canvas.NewImageFromImage(nil)
	display.gridImage.FillMode = canvas.ImageFillContain
	display.gridImage.ScaleMode = canvas.ImageScaleSmooth
	display.gridImage.SetMinSize(fyne.NewSize(ImageAreaWidth, ImageAreaHeight))

	return display
}

func (id *ImageDisplay) GetContainer() fyne.CanvasObject {
	return id.gridImage
}

func (id *ImageDisplay) SetImage(img image.Image) {
	id.gridImage.Image = img
	id.gridImage.Refresh()
}
