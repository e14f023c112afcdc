package fyne

import "fyne.io/fyne/v2"

// MenuOption is used to customize the behaviour and properties of a [fyne.MenuItem]
type MenuOption func(*fyne.MenuItem)

// Checked allows toggling the state of a [fyne.MenuItem], calling onChange with the
// new value whenever the [fyne.MenuItem] is clicked/tapped.
func Checked(b bool, onChange func(bool)) MenuOption {
	return func(item *fyne.MenuItem) {
		item.Checked = b
		item.Action = func() {
			item.Checked = !item.Checked
			onChange(item.Checked)
		}
	}
}

// NewCustomizedMenuItem creates a [fyne.MenuItem] with the provided label and fn, and applies
// all of the MenuOption(s) to it.
func NewCustomizedMenuItem(label string, fn func(), opts ...MenuOption) *fyne.MenuItem {
	m := fyne.NewMenuItem(label, fn)
	for _, o := range opts {
		o(m)
	}
	return m
}
