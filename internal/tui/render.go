package tui

import (
	"math"
	"strconv"

	"gcpick/internal/geom"
	"gcpick/internal/overlay"
	"gcpick/internal/transform"
)

// renderCamera draws the frame, the stored source markers, any prior
// control points, and in corner mode the area-of-interest ring.
func (m Model) renderCamera(w, h int) string {
	g := newCellGrid(w, h)
	drawFrame(g, m.frame, m.camVP, w, h)

	if ring := m.ov.ImagePolygon(); len(ring) >= 3 {
		br := newBrailleBuf(w, h)
		br.strokeRing(projectRingMicro(m.camVP, ring, w, h))
		br.drawTo(g, polyColor)
	}
	for _, mk := range m.ov.Prior() {
		if sx, sy, ok := m.camVP.screenXY(mk.X, mk.Y, w, h); ok {
			g.overlay(sx, sy, glyph(m.markers.Prior, 'x'), priorColor)
		}
	}
	for _, mk := range m.ov.Sources() {
		sx, sy, ok := m.camVP.screenXY(mk.X, mk.Y, w, h)
		if !ok {
			continue
		}
		g.overlay(sx, sy, glyph(m.markers.Source, '+'), sourceColor)
		g.text(sx+2, sy, mk.Label, labelColor)
	}
	return g.render()
}

// renderMap draws the graticule, the destination markers with the clicked
// ones highlighted, and the derived area-of-interest ring, all in the
// geographic frame.
func (m Model) renderMap(w, h int) string {
	g := newCellGrid(w, h)
	m.drawGraticule(g, w, h)

	if ring := m.ov.GeoPolygon(); len(ring) >= 3 {
		br := newBrailleBuf(w, h)
		mic := projectRingMicro(m.mapVP, ring, w, h)
		br.fillRing(mic)
		br.strokeRing(mic)
		br.drawTo(g, polyColor)
	}
	sel := m.ov.Selected()
	for i, mk := range m.mapDests() {
		sx, sy, ok := m.mapVP.screenXY(mk.X, mk.Y, w, h)
		if !ok {
			continue
		}
		color := destColor
		if i < sel {
			color = selectedColor
		}
		g.overlay(sx, sy, glyph(m.markers.Dest, 'o'), color)
		g.text(sx+2, sy, mk.Label, color)
	}
	return g.render()
}

// mapDests returns the destination markers in the geographic frame. A set
// carrying a projected CRS is converted for display only; stored data keeps
// its original coordinates.
func (m Model) mapDests() []overlay.Marker {
	dests := m.ov.Dests()
	if !m.crs.Valid() || m.crs == transform.WGS84 {
		return dests
	}
	pts := make([]geom.Point, 0, len(dests))
	for _, mk := range dests {
		pts = append(pts, geom.Point{X: mk.X, Y: mk.Y})
	}
	out, err := transform.Reproject(pts, m.crs, transform.WGS84)
	if err != nil {
		return dests
	}
	for i := range dests {
		dests[i].X = out[i].X
		dests[i].Y = out[i].Y
	}
	return dests
}

// drawGraticule rules the visible window at a round coordinate step and
// labels the bottom and left edges.
func (m Model) drawGraticule(g *cellGrid, w, h int) {
	vp := m.mapVP
	x0, yTop, ok := vp.cellToWorld(0, 0, w, h)
	if !ok {
		return
	}
	x1, yBot, _ := vp.cellToWorld(w-1, h-1, w, h)
	yMin, yMax := math.Min(yTop, yBot), math.Max(yTop, yBot)
	if x1 <= x0 || yMax <= yMin {
		return
	}
	n := m.mapCfg.Graticule
	if n < 2 {
		n = 6
	}
	stepX := niceStep((x1 - x0) / float64(n))
	stepY := niceStep((yMax - yMin) / float64(n))

	br := newBrailleBuf(w, h)
	for x := math.Ceil(x0/stepX) * stepX; x <= x1; x += stepX {
		ax, ay, ok1 := vp.screenMicro(x, yMin, w, h)
		bx, by, ok2 := vp.screenMicro(x, yMax, w, h)
		if ok1 && ok2 {
			br.drawLineMicro(ax, ay, bx, by)
		}
	}
	for y := math.Ceil(yMin/stepY) * stepY; y <= yMax; y += stepY {
		ax, ay, ok1 := vp.screenMicro(x0, y, w, h)
		bx, by, ok2 := vp.screenMicro(x1, y, w, h)
		if ok1 && ok2 {
			br.drawLineMicro(ax, ay, bx, by)
		}
	}
	br.drawTo(g, gridColor)

	precX := stepPrecision(stepX)
	for x := math.Ceil(x0/stepX) * stepX; x <= x1; x += stepX {
		if cx, _, ok := vp.screenXY(x, yMin, w, h); ok && cx >= 0 && cx < w {
			g.text(cx, h-1, strconv.FormatFloat(x, 'f', precX, 64), baseDimFg.Dark)
		}
	}
	precY := stepPrecision(stepY)
	for y := math.Ceil(yMin/stepY) * stepY; y <= yMax; y += stepY {
		if _, cy, ok := vp.screenXY(x0, y, w, h); ok && cy >= 0 && cy < h {
			g.text(0, cy, strconv.FormatFloat(y, 'f', precY, 64), baseDimFg.Dark)
		}
	}
}

// niceStep rounds raw up to the nearest 1/2/5 times a power of ten.
func niceStep(raw float64) float64 {
	if raw <= 0 || math.IsNaN(raw) || math.IsInf(raw, 0) {
		return 1
	}
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	switch n := raw / mag; {
	case n <= 1:
		return mag
	case n <= 2:
		return 2 * mag
	case n <= 5:
		return 5 * mag
	default:
		return 10 * mag
	}
}

func stepPrecision(step float64) int {
	if step >= 1 {
		return 0
	}
	return int(math.Ceil(-math.Log10(step)))
}

func projectRingMicro(vp viewport, ring geom.Polygon, w, h int) [][2]int {
	out := make([][2]int, 0, len(ring))
	for _, p := range ring {
		mx, my, ok := vp.screenMicro(p.X, p.Y, w, h)
		if !ok {
			continue
		}
		out = append(out, [2]int{mx, my})
	}
	return out
}

func glyph(s string, fallback rune) rune {
	for _, r := range s {
		return r
	}
	return fallback
}
