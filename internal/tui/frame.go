package tui

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
)

// drawFrame scales the visible part of the frame onto the grid with
// half-block cells, two vertically stacked image samples per terminal cell.
// Cells the frame does not reach keep their background (letterbox).
func drawFrame(g *cellGrid, frame image.Image, vp viewport, w, h int) {
	if frame == nil || !vp.valid() || w < 2 || h < 1 {
		return
	}
	b := frame.Bounds()
	x0, y0 := vp.pixelF(0, 0, w, h)
	x1, y1 := vp.pixelF(float64(b.Dx()), float64(b.Dy()), w, h)
	// The max corner lands on the last covered pixel, and image.Rect is
	// half-open, so widen by one to keep the edge row and column.
	dr := image.Rect(int(math.Round(x0)), int(math.Round(y0)), int(math.Round(x1))+1, int(math.Round(y1))+1)
	if dr.Empty() {
		return
	}
	canvas := image.NewRGBA(image.Rect(0, 0, w, 2*h))
	draw.ApproxBiLinear.Scale(canvas, dr, frame, b, draw.Src, nil)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			top := canvas.RGBAAt(x, 2*y)
			bot := canvas.RGBAAt(x, 2*y+1)
			if top.A == 0 && bot.A == 0 {
				continue
			}
			g.set(x, y, '▀', hex(top), hex(bot))
		}
	}
}

func hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
