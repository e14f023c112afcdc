package views

import (
	"fmt"
	"image"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/thelolagemann/gochip8/pkg/display/event"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

const (
	plotWidth  = 640
	plotHeight = 240
)

// Performance plots the instructions executed per frame and the
// average frame time.
type Performance struct {
	WindowedView

	instructions *samples
	frameTimes   *samples
}

func (p *Performance) Title() string {
	return "Performance"
}

func (p *Performance) Run(window fyne.Window, events <-chan event.Event) error {
	p.Window = window
	p.instructions = newSamples(240)
	p.frameTimes = newSamples(60)

	ipfImage, ipfRaster := newPlotRaster()
	ftImage, ftRaster := newPlotRaster()
	summary := widget.NewLabel("")

	save := widget.NewButton("Save", func() {
		p.saveImage(ipfImage, "instructions.png")
	})
	window.SetContent(container.NewVBox(ipfRaster, ftRaster, container.NewHBox(summary, save)))

	go func() {
		redraw := time.NewTicker(time.Second / 4)
		defer redraw.Stop()
		for {
			select {
			case e, ok := <-events:
				if !ok {
					return
				}
				switch e.Type {
				case event.Quit:
					return
				case event.Instructions:
					p.instructions.add(float64(e.Data.(int)))
				case event.FrameTime:
					p.frameTimes.add(float64(e.Data.(time.Duration)) / float64(time.Millisecond))
				}
			case <-redraw.C:
				if err := drawPlot(ipfImage, "Instructions per frame", "frame", p.instructions); err != nil {
					p.error(err)
					return
				}
				if err := drawPlot(ftImage, "Frame time", "ms", p.frameTimes); err != nil {
					p.error(err)
					return
				}
				ipfRaster.Refresh()
				ftRaster.Refresh()
				summary.SetText(fmt.Sprintf("IPF: %.1f  Frame time: %.2fms", p.instructions.mean(), p.frameTimes.mean()))
			}
		}
	}()

	return nil
}

func newPlotRaster() (*image.RGBA, *canvas.Raster) {
	img := image.NewRGBA(image.Rect(0, 0, plotWidth, plotHeight))
	r := canvas.NewRasterFromImage(img)
	r.ScaleMode = canvas.ImageScalePixels
	r.SetMinSize(fyne.NewSize(plotWidth, plotHeight))
	return img, r
}

// drawPlot renders s as a line plot into img.
func drawPlot(img *image.RGBA, title, x string, s *samples) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = x

	line, err := plotter.NewLine(s.xys())
	if err != nil {
		return err
	}
	p.Add(line)

	p.Draw(draw.New(vgimg.NewWith(vgimg.UseImage(img))))
	return nil
}
