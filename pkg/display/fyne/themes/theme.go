// Package themes provides the fyne themes of the emulator.
package themes

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// Phosphor is a dark theme after the green screens the CHIP-8 ran on.
type Phosphor struct{}

var (
	phosphor    = color.NRGBA{0x33, 0xff, 0x66, 0xff}
	phosphorDim = color.NRGBA{0x1f, 0x99, 0x3d, 0xff}

	surface      = color.NRGBA{0x0c, 0x12, 0x0e, 0xff}
	surfaceRaise = color.NRGBA{0x18, 0x24, 0x1c, 0xff}
	surfaceHover = color.NRGBA{0x26, 0x38, 0x2c, 0xff}

	disabledText = color.NRGBA{0x5c, 0x70, 0x62, 0xff}
)

var colorMap = map[fyne.ThemeColorName]color.Color{
	theme.ColorNamePrimary:         phosphor,
	theme.ColorNameForeground:      phosphor,
	theme.ColorNamePlaceHolder:     phosphorDim,
	theme.ColorNameBackground:      surface,
	theme.ColorNameMenuBackground:  surfaceRaise,
	theme.ColorNameButton:          surfaceRaise,
	theme.ColorNameInputBackground: surfaceRaise,
	theme.ColorNameFocus:           surfaceHover,
	theme.ColorNameHover:           surfaceHover,
	theme.ColorNameDisabled:        disabledText,
}

func (Phosphor) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	if c, ok := colorMap[name]; ok {
		return c
	}
	return theme.DefaultTheme().Color(name, variant)
}

func (Phosphor) Font(style fyne.TextStyle) fyne.Resource    { return theme.DefaultTheme().Font(style) }
func (Phosphor) Icon(name fyne.ThemeIconName) fyne.Resource { return theme.DefaultTheme().Icon(name) }
func (Phosphor) Size(name fyne.ThemeSizeName) float32       { return theme.DefaultTheme().Size(name) }
