package transform

import (
	"fmt"

	"gcpick/internal/geom"
)

// Code identifies a coordinate reference system by EPSG number.
// The zero value means "no CRS given".
type Code int

const (
	None        Code = 0
	WGS84       Code = 4326
	WebMercator Code = 3857
)

// Valid reports whether the code names an actual CRS.
func (c Code) Valid() bool { return c != None }

func (c Code) String() string {
	if c == None {
		return "none"
	}
	return fmt.Sprintf("EPSG:%d", int(c))
}

// Reproject transforms points between coordinate reference systems via
// WGS84 lon/lat. Identity when from is None or from equals to. Z values pass
// through untouched.
func Reproject(pts []geom.Point, from, to Code) ([]geom.Point, error) {
	out := make([]geom.Point, len(pts))
	copy(out, pts)
	if !from.Valid() || from == to {
		return out, nil
	}
	pf, err := ForCode(from)
	if err != nil {
		return nil, err
	}
	pt, err := ForCode(to)
	if err != nil {
		return nil, err
	}
	for i := range out {
		lon, lat := pf.ToWGS84(out[i].X, out[i].Y)
		out[i].X, out[i].Y = pt.FromWGS84(lon, lat)
	}
	return out, nil
}

// ReprojectSet is Reproject over a whole set, keeping its dimensionality.
func ReprojectSet(s geom.PointSet, from, to Code) (geom.PointSet, error) {
	pts, err := Reproject(s.Points, from, to)
	if err != nil {
		return geom.PointSet{}, err
	}
	return geom.PointSet{Points: pts, HasZ: s.HasZ}, nil
}

// BoundingPolygonFromCorners builds the area-of-interest ring from exactly
// four corners. The input order is trusted and defines the ring's winding;
// corners supplied out of order produce a self-intersecting or wrongly
// oriented ring, which is the caller's responsibility, not validated here.
func BoundingPolygonFromCorners(corners []geom.Point) (geom.Polygon, error) {
	if len(corners) != 4 {
		return nil, fmt.Errorf("bounding polygon: need exactly 4 corners, got %d", len(corners))
	}
	ring := make(geom.Polygon, 4)
	copy(ring, corners)
	return ring, nil
}
