package geom

// Point is a 2D or 3D coordinate. Z is only meaningful when the owning
// PointSet reports HasZ.
type Point struct {
	X float64
	Y float64
	Z float64
}

// PointSet is an ordered sequence of points with uniform dimensionality.
type PointSet struct {
	Points []Point
	HasZ   bool
}

// Len returns the number of points in the set.
func (s PointSet) Len() int { return len(s.Points) }

// BBox returns the bounding box of the set. Valid only for non-empty sets.
func (s PointSet) BBox() BBox {
	var b BBox
	for i, p := range s.Points {
		if i == 0 {
			b = BBox{MinX: p.X, MinY: p.Y, MaxX: p.X, MaxY: p.Y}
			continue
		}
		b.Extend(p.X, p.Y)
	}
	return b
}

// Coords returns the set as [x,y] or [x,y,z] slices, matching HasZ.
func (s PointSet) Coords() [][]float64 {
	out := make([][]float64, 0, len(s.Points))
	for _, p := range s.Points {
		if s.HasZ {
			out = append(out, []float64{p.X, p.Y, p.Z})
		} else {
			out = append(out, []float64{p.X, p.Y})
		}
	}
	return out
}

// Polygon is a ring of vertices. The ring is implicitly closed: the edge from
// the last vertex back to the first is part of the polygon.
type Polygon []Point

// BBox returns the bounding box of the ring. Valid only for non-empty rings.
func (p Polygon) BBox() BBox {
	var b BBox
	for i, v := range p {
		if i == 0 {
			b = BBox{MinX: v.X, MinY: v.Y, MaxX: v.X, MaxY: v.Y}
			continue
		}
		b.Extend(v.X, v.Y)
	}
	return b
}

type BBox struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

// Extend grows the box to include (x, y).
func (b *BBox) Extend(x, y float64) {
	if x < b.MinX {
		b.MinX = x
	}
	if y < b.MinY {
		b.MinY = y
	}
	if x > b.MaxX {
		b.MaxX = x
	}
	if y > b.MaxY {
		b.MaxY = y
	}
}

// Pad grows the box outward by d on every side.
func (b *BBox) Pad(d float64) {
	b.MinX -= d
	b.MinY -= d
	b.MaxX += d
	b.MaxY += d
}

// Valid reports whether the box spans a positive area.
func (b BBox) Valid() bool {
	return b.MaxX > b.MinX && b.MaxY > b.MinY
}
