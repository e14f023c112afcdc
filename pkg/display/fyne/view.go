package fyne

import (
	"fyne.io/fyne/v2"
	"github.com/thelolagemann/gochip8/pkg/display/event"
)

// View defines the interface contract for a view.
type View interface {
	// Run sets up the view on window and returns. Events from the
	// machine arrive on events until the window is closed.
	Run(window fyne.Window, events <-chan event.Event) error
	// Title returns a unique title for the view.
	Title() string
}
