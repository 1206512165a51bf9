package transform

import (
	"math"
	"testing"

	"gcpick/internal/geom"
)

func almostEqual(a, b, tol float64) bool { return math.Abs(a-b) <= tol }

func TestReprojectIdentityWithoutCRS(t *testing.T) {
	pts := []geom.Point{{X: 12.5, Y: -3.25, Z: 7}}
	out, err := Reproject(pts, None, WGS84)
	if err != nil {
		t.Fatalf("Reproject: %v", err)
	}
	if out[0] != pts[0] {
		t.Errorf("identity reprojection changed point: %+v", out[0])
	}
	out, err = Reproject(pts, WGS84, WGS84)
	if err != nil {
		t.Fatalf("Reproject: %v", err)
	}
	if out[0] != pts[0] {
		t.Errorf("same-crs reprojection changed point: %+v", out[0])
	}
}

func TestReprojectDoesNotAliasInput(t *testing.T) {
	pts := []geom.Point{{X: 9, Y: 48}}
	out, err := Reproject(pts, WGS84, Code(32632))
	if err != nil {
		t.Fatalf("Reproject: %v", err)
	}
	if pts[0].X != 9 || pts[0].Y != 48 {
		t.Errorf("input mutated: %+v", pts[0])
	}
	if out[0].X == 9 {
		t.Error("output not projected")
	}
}

func TestWebMercator(t *testing.T) {
	p, err := ForCode(WebMercator)
	if err != nil {
		t.Fatal(err)
	}
	x, y := p.FromWGS84(180, 0)
	if !almostEqual(x, 20037508.342789244, 1e-3) {
		t.Errorf("x(180, 0) = %v", x)
	}
	if !almostEqual(y, 0, 1e-9) {
		t.Errorf("y(180, 0) = %v", y)
	}
	lon, lat := p.ToWGS84(p.FromWGS84(5.914, 50.807))
	if !almostEqual(lon, 5.914, 1e-9) || !almostEqual(lat, 50.807, 1e-9) {
		t.Errorf("round trip = (%v, %v)", lon, lat)
	}
}

func TestUTMCentralMeridian(t *testing.T) {
	// zone 32 is centered on 9 degrees east
	p, err := ForCode(Code(32632))
	if err != nil {
		t.Fatal(err)
	}
	e, n := p.FromWGS84(9, 0)
	if !almostEqual(e, 500000, 1e-6) {
		t.Errorf("easting on central meridian = %v, want 500000", e)
	}
	if !almostEqual(n, 0, 1e-6) {
		t.Errorf("northing on equator = %v, want 0", n)
	}

	south, err := ForCode(Code(32732))
	if err != nil {
		t.Fatal(err)
	}
	_, n = south.FromWGS84(9, 0)
	if !almostEqual(n, 10000000, 1e-6) {
		t.Errorf("southern northing on equator = %v, want 10000000", n)
	}
}

func TestUTMPlausibleMagnitudes(t *testing.T) {
	p, err := ForCode(Code(32632))
	if err != nil {
		t.Fatal(err)
	}
	e, n := p.FromWGS84(11.5, 48.1)
	if e < 680000 || e > 692000 {
		t.Errorf("easting = %v, want roughly 686000", e)
	}
	if n < 5.31e6 || n > 5.34e6 {
		t.Errorf("northing = %v, want roughly 5.33e6", n)
	}
}

func TestUTMRoundTrip(t *testing.T) {
	cases := []struct {
		code     Code
		lon, lat float64
	}{
		{Code(32633), 14.51, 52.43},
		{Code(32632), 5.914, 50.807},
		{Code(32735), 28.2, -15.4},
	}
	for _, tc := range cases {
		p, err := ForCode(tc.code)
		if err != nil {
			t.Fatalf("ForCode(%v): %v", tc.code, err)
		}
		lon, lat := p.ToWGS84(p.FromWGS84(tc.lon, tc.lat))
		if !almostEqual(lon, tc.lon, 1e-6) || !almostEqual(lat, tc.lat, 1e-6) {
			t.Errorf("%v round trip (%v, %v) = (%v, %v)", tc.code, tc.lon, tc.lat, lon, lat)
		}
	}
}

func TestReprojectKeepsZ(t *testing.T) {
	set := geom.PointSet{Points: []geom.Point{{X: 642735.8, Y: 8304292.0, Z: 1189.2}}, HasZ: true}
	out, err := ReprojectSet(set, Code(32735), WGS84)
	if err != nil {
		t.Fatalf("ReprojectSet: %v", err)
	}
	if !out.HasZ || out.Points[0].Z != 1189.2 {
		t.Errorf("z not preserved: %+v", out.Points[0])
	}
	if out.Points[0].X == set.Points[0].X {
		t.Error("x not projected")
	}
}

func TestForCodeUnsupported(t *testing.T) {
	for _, c := range []Code{Code(2154), Code(32561), Code(32661), Code(-1)} {
		if _, err := ForCode(c); err == nil {
			t.Errorf("ForCode(%v): expected error", c)
		}
	}
}

func TestBoundingPolygonFromCorners(t *testing.T) {
	corners := []geom.Point{{X: 1, Y: 1}, {X: 1, Y: 9}, {X: 9, Y: 9}, {X: 9, Y: 1}}
	ring, err := BoundingPolygonFromCorners(corners)
	if err != nil {
		t.Fatalf("BoundingPolygonFromCorners: %v", err)
	}
	if len(ring) != 4 {
		t.Fatalf("ring has %d vertices, want 4", len(ring))
	}
	for i := range corners {
		if ring[i] != corners[i] {
			t.Errorf("vertex %d = %+v, want %+v (order must be preserved)", i, ring[i], corners[i])
		}
	}
	// the ring must be a copy, not a view of the input
	corners[0].X = 99
	if ring[0].X == 99 {
		t.Error("ring aliases the input slice")
	}
	if _, err := BoundingPolygonFromCorners(corners[:3]); err == nil {
		t.Error("expected error for 3 corners")
	}
}
