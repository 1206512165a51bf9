package tui

import "gcpick/internal/geom"

// Zoom limits and step shared by both views.
const (
	zoomMin  = 0.05
	zoomMax  = 64.0
	zoomStep = 1.2
)

// viewport maps world coordinates onto a terminal cell grid with zoom and
// pan. With flipY set, world y grows upward (geographic north); unset it
// grows downward (image rows).
type viewport struct {
	bbox    geom.BBox
	zoom    float64
	offsetX int
	offsetY int
	flipY   bool
}

func (v viewport) valid() bool {
	return v.bbox.MaxX > v.bbox.MinX && v.bbox.MaxY > v.bbox.MinY && v.zoom > 0
}

// fitWindow sets the world window so that world keeps its aspect ratio on a
// w×2h half-block pixel grid, padding the short axis around the center, and
// resets zoom and pan.
func (v *viewport) fitWindow(world geom.BBox, w, h int) {
	v.zoom = 1.0
	v.offsetX, v.offsetY = 0, 0
	if !(world.MaxX > world.MinX && world.MaxY > world.MinY) || w < 2 || h < 1 {
		v.bbox = world
		return
	}
	cw := float64(w)
	ch := float64(2 * h)
	ww := world.MaxX - world.MinX
	wh := world.MaxY - world.MinY
	if ww/wh < cw/ch {
		pad := (wh*cw/ch - ww) / 2
		world.MinX -= pad
		world.MaxX += pad
	} else {
		pad := (ww*ch/cw - wh) / 2
		world.MinY -= pad
		world.MaxY += pad
	}
	v.bbox = world
}

func (v *viewport) zoomIn() bool {
	if v.zoom >= zoomMax {
		return false
	}
	v.zoom *= zoomStep
	return true
}

func (v *viewport) zoomOut() bool {
	if v.zoom <= zoomMin {
		return false
	}
	v.zoom /= zoomStep
	return true
}

func (v *viewport) pan(dx, dy int) {
	v.offsetX += dx
	v.offsetY += dy
}

// normalized returns world coordinates scaled into the zoomed unit square,
// with y flipped for screen orientation when flipY is set.
func (v viewport) normalized(x, y float64) (float64, float64) {
	nx := (x - v.bbox.MinX) / (v.bbox.MaxX - v.bbox.MinX)
	ny := (y - v.bbox.MinY) / (v.bbox.MaxY - v.bbox.MinY)
	zx := 0.5 + (nx-0.5)*v.zoom
	zy := 0.5 + (ny-0.5)*v.zoom
	if v.flipY {
		zy = 1.0 - zy
	}
	return zx, zy
}

// screenXY maps a world coordinate to cell coordinates considering zoom and
// pan. Out-of-view coordinates still map; callers clip.
func (v viewport) screenXY(x, y float64, w, h int) (int, int, bool) {
	if !v.valid() || w <= 1 || h <= 1 {
		return 0, 0, false
	}
	zx, zy := v.normalized(x, y)
	sx := int(zx*float64(w-1)) + v.offsetX
	sy := int(zy*float64(h-1)) + v.offsetY
	return sx, sy, true
}

// screenMicro maps a world coordinate into the 2x4 braille microgrid.
func (v viewport) screenMicro(x, y float64, w, h int) (int, int, bool) {
	if !v.valid() || w <= 1 || h <= 1 {
		return 0, 0, false
	}
	zx, zy := v.normalized(x, y)
	wMic := w * 2
	hMic := h * 4
	sx := int(zx*float64(wMic-1)) + v.offsetX*2
	sy := int(zy*float64(hMic-1)) + v.offsetY*4
	return sx, sy, true
}

// pixelF maps a world coordinate into the w×2h half-block pixel grid,
// keeping the fraction so rectangle corners land exactly.
func (v viewport) pixelF(x, y float64, w, h int) (float64, float64) {
	zx, zy := v.normalized(x, y)
	px := zx*float64(w-1) + float64(v.offsetX)
	py := zy*float64(2*h-1) + float64(2*v.offsetY)
	return px, py
}

// cellToWorld converts a cell coordinate back to world coordinates using the
// window, zoom, and pan. It is the inverse of screenXY up to cell size.
func (v viewport) cellToWorld(cx, cy, w, h int) (float64, float64, bool) {
	if !v.valid() || w <= 1 || h <= 1 {
		return 0, 0, false
	}
	zx := float64(cx-v.offsetX) / float64(w-1)
	zy := float64(cy-v.offsetY) / float64(h-1)
	if v.flipY {
		zy = 1.0 - zy
	}
	nx := 0.5 + (zx-0.5)/v.zoom
	ny := 0.5 + (zy-0.5)/v.zoom
	x := v.bbox.MinX + nx*(v.bbox.MaxX-v.bbox.MinX)
	y := v.bbox.MinY + ny*(v.bbox.MaxY-v.bbox.MinY)
	return x, y, true
}
