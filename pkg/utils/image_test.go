package utils

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"github.com/thelolagemann/gochip8/internal/display"
)

func TestFrameImage(t *testing.T) {
	var f display.Frame
	f[0][0] = true
	f[31][63] = true
	rgb := f.RGB(display.On, display.Off)

	img := FrameImage(rgb, 1)
	if b := img.Bounds(); b.Dx() != display.Width || b.Dy() != display.Height {
		t.Fatalf("expected 64x32, got %v", b)
	}
	if img.RGBAAt(0, 0) != (color.RGBA{0xFF, 0xFF, 0xFF, 0xFF}) {
		t.Errorf("expected lit pixel, got %v", img.RGBAAt(0, 0))
	}

	img = FrameImage(rgb, 4)
	if b := img.Bounds(); b.Dx() != display.Width*4 || b.Dy() != display.Height*4 {
		t.Fatalf("expected 256x128, got %v", b)
	}
	for _, p := range [][2]int{{0, 0}, {3, 3}, {252, 124}, {255, 127}} {
		if img.RGBAAt(p[0], p[1]).R != 0xFF {
			t.Errorf("expected (%d, %d) to be lit", p[0], p[1])
		}
	}
	if img.RGBAAt(4, 0).R != 0 {
		t.Error("expected (4, 0) to be unlit")
	}

	var b bytes.Buffer
	if err := EncodeImage(&b, img); err != nil {
		t.Fatal(err)
	}
	decoded, err := png.Decode(&b)
	if err != nil {
		t.Fatal(err)
	}
	if decoded.Bounds() != img.Bounds() {
		t.Errorf("expected decoded bounds %v, got %v", img.Bounds(), decoded.Bounds())
	}
}
