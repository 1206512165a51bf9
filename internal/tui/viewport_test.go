package tui

import (
	"math"
	"testing"

	"gcpick/internal/geom"
)

func TestViewportRoundTrip(t *testing.T) {
	vp := viewport{bbox: geom.BBox{MinX: 0, MinY: 0, MaxX: 100, MaxY: 80}, zoom: 1}
	w, h := 80, 40
	cells := [][2]int{{0, 0}, {79, 39}, {40, 20}, {13, 7}}
	for _, c := range cells {
		x, y, ok := vp.cellToWorld(c[0], c[1], w, h)
		if !ok {
			t.Fatalf("cellToWorld(%v) failed", c)
		}
		sx, sy, ok := vp.screenXY(x, y, w, h)
		if !ok {
			t.Fatalf("screenXY(%g,%g) failed", x, y)
		}
		if abs(sx-c[0]) > 1 || abs(sy-c[1]) > 1 {
			t.Errorf("cell %v round-tripped to (%d,%d)", c, sx, sy)
		}
	}
}

func TestViewportFlipY(t *testing.T) {
	vp := viewport{bbox: geom.BBox{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10}, zoom: 1, flipY: true}
	w, h := 20, 10
	_, yTop, ok := vp.cellToWorld(0, 0, w, h)
	if !ok {
		t.Fatal("cellToWorld failed")
	}
	_, yBot, _ := vp.cellToWorld(0, h-1, w, h)
	if yTop <= yBot {
		t.Errorf("flipY: top row y=%g not above bottom row y=%g", yTop, yBot)
	}

	vp.flipY = false
	_, yTop, _ = vp.cellToWorld(0, 0, w, h)
	_, yBot, _ = vp.cellToWorld(0, h-1, w, h)
	if yTop >= yBot {
		t.Errorf("image orientation: top row y=%g not below bottom row y=%g", yTop, yBot)
	}
}

func TestViewportZoomTracksCenter(t *testing.T) {
	vp := viewport{bbox: geom.BBox{MinX: 0, MinY: 0, MaxX: 100, MaxY: 100}, zoom: 1}
	w, h := 51, 51
	cx, cy, _ := vp.screenXY(50, 50, w, h)
	vp.zoomIn()
	zx, zy, _ := vp.screenXY(50, 50, w, h)
	if abs(zx-cx) > 1 || abs(zy-cy) > 1 {
		t.Errorf("center moved on zoom: (%d,%d) -> (%d,%d)", cx, cy, zx, zy)
	}
}

func TestViewportZoomClamps(t *testing.T) {
	vp := viewport{bbox: geom.BBox{MaxX: 1, MaxY: 1}, zoom: zoomMax}
	if vp.zoomIn() {
		t.Error("zoomIn passed the upper clamp")
	}
	vp.zoom = zoomMin
	if vp.zoomOut() {
		t.Error("zoomOut passed the lower clamp")
	}
	vp.zoom = 1
	if !vp.zoomIn() || vp.zoom != zoomStep {
		t.Errorf("zoomIn from 1 gave %g", vp.zoom)
	}
}

func TestFitWindowKeepsAspect(t *testing.T) {
	var vp viewport
	world := geom.BBox{MinX: 0, MinY: 0, MaxX: 100, MaxY: 80}
	w, h := 84, 40
	vp.fitWindow(world, w, h)

	got := (vp.bbox.MaxX - vp.bbox.MinX) / (vp.bbox.MaxY - vp.bbox.MinY)
	want := float64(w) / float64(2*h)
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("window aspect = %g, want %g", got, want)
	}
	// the wide axis is untouched, the short axis padded symmetrically
	if vp.bbox.MinX != 0 || vp.bbox.MaxX != 100 {
		t.Errorf("x range changed: %+v", vp.bbox)
	}
	if top, bot := vp.bbox.MaxY-80, -vp.bbox.MinY; math.Abs(top-bot) > 1e-9 {
		t.Errorf("y padding not symmetric: %+v", vp.bbox)
	}
	if vp.zoom != 1 || vp.offsetX != 0 || vp.offsetY != 0 {
		t.Errorf("fit did not reset zoom/pan: %+v", vp)
	}
}

func TestViewportPan(t *testing.T) {
	vp := viewport{bbox: geom.BBox{MaxX: 10, MaxY: 10}, zoom: 1}
	w, h := 20, 10
	sx, sy, _ := vp.screenXY(5, 5, w, h)
	vp.pan(3, -2)
	nx, ny, _ := vp.screenXY(5, 5, w, h)
	if nx != sx+3 || ny != sy-2 {
		t.Errorf("pan moved point (%d,%d) -> (%d,%d)", sx, sy, nx, ny)
	}
}
