package utils

import (
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/thelolagemann/gochip8/internal/display"
	"golang.org/x/image/draw"
)

// FrameImage converts a packed RGB frame, as sent to display
// drivers, into an image scaled by scale with nearest neighbour
// sampling, so each pixel stays a sharp square.
func FrameImage(rgb []byte, scale int) *image.RGBA {
	src := image.NewRGBA(image.Rect(0, 0, display.Width, display.Height))
	for i := 0; i < display.Width*display.Height && i*3+2 < len(rgb); i++ {
		src.SetRGBA(i%display.Width, i/display.Width, color.RGBA{R: rgb[i*3], G: rgb[i*3+1], B: rgb[i*3+2], A: 0xFF})
	}
	if scale <= 1 {
		return src
	}

	dst := image.NewRGBA(image.Rect(0, 0, display.Width*scale, display.Height*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// EncodeImage writes img to w as a PNG.
func EncodeImage(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}
