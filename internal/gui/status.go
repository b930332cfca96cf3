package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// StatusBar shows the textual status message and the advisory progress bar
// at the bottom of the window.
type StatusBar struct {
	container   *fyne.Container
	statusLabel *widget.Label
	progressBar *widget.ProgressBar
}

func NewStatusBar() *StatusBar {
	sb := &StatusBar{
		statusLabel: widget.NewLabel("Ready."),
		progressBar: widget.NewProgressBar(),
	}
	sb.progressBar.SetValue(1)

	sb.container = container.NewBorder(nil, nil, nil, sb.progressBar, sb.statusLabel)
	return sb
}

func (sb *StatusBar) GetContainer() *fyne.Container {
	return sb.container
}

func (sb *StatusBar) SetStatus(status string) {
	sb.statusLabel.SetText(status)
}

// SetProgress takes the advisory 0-100 value published by background tasks.
func (sb *StatusBar) SetProgress(percent int) {
	sb.progressBar.SetValue(float64(percent) / 100.0)
}
