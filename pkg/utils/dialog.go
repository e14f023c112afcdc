//go:build !test

package utils

import (
	"image"
	"os"
	"strings"

	"github.com/sqweek/dialog"
)

// AskForFile asks the user to pick a program to load.
func AskForFile(title, startingDir string) (string, error) {
	builder := dialog.File().
		Filter("CHIP-8 programs", "ch8", "c8", "gz", "zip", "7z").
		SetStartDir(startingDir).
		Title(title)

	return builder.Load()
}

// SaveImage asks the user where to save img, and writes it there as
// a PNG.
func SaveImage(img image.Image) error {
	filename, err := dialog.File().Filter("PNG Image", "png").Title("Save Image").Save()
	if err != nil {
		return err
	}
	if !strings.HasSuffix(filename, ".png") {
		filename += ".png"
	}

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	return EncodeImage(file, img)
}
