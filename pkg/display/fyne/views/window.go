package views

import (
	"image"
	"image/png"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
)

// WindowedView is a helper struct to allow views to be embedded
// with a Window.
type WindowedView struct {
	Window fyne.Window
}

// error displays err with a dialog on the embedded Window. If err
// is nil, nothing happens.
func (w *WindowedView) error(err error) {
	if err != nil {
		dialog.ShowError(err, w.Window)
	}
}

func (w *WindowedView) saveImage(img image.Image, name string) {
	d := dialog.NewFileSave(func(closer fyne.URIWriteCloser, err error) {
		if err != nil {
			w.error(err)
			return
		}
		if closer == nil {
			return // user cancelled
		}
		defer closer.Close()
		w.error(png.Encode(closer, img))
	}, w.Window)
	d.SetFileName(name)
	d.Show()
}
