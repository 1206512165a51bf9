// Package overlay holds the markers and derived polygons drawn over the
// camera and map views. It is the single source of truth for annotation
// state: both views render read-only projections of one Model, so nothing
// can drift between them.
package overlay

import "gcpick/internal/geom"

// MarkerKind distinguishes how a marker is drawn and which view owns it.
type MarkerKind int

const (
	// KindSource marks an accepted click, in image pixel coordinates.
	KindSource MarkerKind = iota
	// KindDest marks a caller-supplied destination point, in destination
	// CRS coordinates.
	KindDest
	// KindPrior marks a control point collected in an earlier session,
	// shown for reference on the image view.
	KindPrior
)

// Marker is one visual annotation: a position in its kind's coordinate
// space plus a short label.
type Marker struct {
	X     float64
	Y     float64
	Label string
	Kind  MarkerKind
}

// Model owns every marker and the derived polygons. Source markers live in
// image space and mirror the collected points 1:1; destination markers are
// fixed at construction. The image polygon is in pixel space, the geo
// polygon in geographic space.
type Model struct {
	src      []Marker
	dst      []Marker
	prior    []Marker
	selected int
	imgPoly  geom.Polygon
	geoPoly  geom.Polygon
}

func New() *Model { return &Model{} }

// SetDest installs the destination markers. Called once at session setup.
func (m *Model) SetDest(markers []Marker) {
	m.dst = append(m.dst[:0], markers...)
	if m.selected > len(m.dst) {
		m.selected = len(m.dst)
	}
}

// SetPrior installs reference markers from an earlier session.
func (m *Model) SetPrior(markers []Marker) {
	m.prior = append(m.prior[:0], markers...)
}

// AddSource appends a source marker for an accepted click.
func (m *Model) AddSource(x, y float64, label string) {
	m.src = append(m.src, Marker{X: x, Y: y, Label: label, Kind: KindSource})
}

// RemoveLastSource destroys the most recent source marker. Reports whether a
// marker was removed.
func (m *Model) RemoveLastSource() bool {
	if len(m.src) == 0 {
		return false
	}
	m.src = m.src[:len(m.src)-1]
	return true
}

// SourceCount returns the number of source markers.
func (m *Model) SourceCount() int { return len(m.src) }

// Sources returns a copy of the source markers in click order.
func (m *Model) Sources() []Marker { return append([]Marker(nil), m.src...) }

// Dests returns a copy of the destination markers in semantic order.
func (m *Model) Dests() []Marker { return append([]Marker(nil), m.dst...) }

// Prior returns a copy of the reference markers.
func (m *Model) Prior() []Marker { return append([]Marker(nil), m.prior...) }

// SetSelected sets how many leading destination markers render highlighted.
// Clamped to the destination count.
func (m *Model) SetSelected(n int) {
	if n < 0 {
		n = 0
	}
	if n > len(m.dst) {
		n = len(m.dst)
	}
	m.selected = n
}

// Selected returns the highlighted destination count.
func (m *Model) Selected() int { return m.selected }

// SetPolygons installs the derived polygons: img in pixel space, geo in
// geographic space.
func (m *Model) SetPolygons(img, geo geom.Polygon) {
	m.imgPoly = append(geom.Polygon(nil), img...)
	m.geoPoly = append(geom.Polygon(nil), geo...)
}

// ClearPolygons resets both derived polygons to empty.
func (m *Model) ClearPolygons() {
	m.imgPoly = nil
	m.geoPoly = nil
}

// ImagePolygon returns the pixel-space polygon, nil when not derived.
func (m *Model) ImagePolygon() geom.Polygon { return append(geom.Polygon(nil), m.imgPoly...) }

// GeoPolygon returns the geographic polygon, nil when not derived.
func (m *Model) GeoPolygon() geom.Polygon { return append(geom.Polygon(nil), m.geoPoly...) }
