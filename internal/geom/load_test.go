package geom

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoadCSVDetectsColumns(t *testing.T) {
	cases := []struct {
		name    string
		content string
		wantZ   bool
	}{
		{"xyz", "name,x,y,z\na,642735.8,8304292.0,1189.2\nb,642737.6,8304295.3,1189.3\n", true},
		{"lonlat", "lon,lat\n5.914,50.807\n5.915,50.808\n", false},
		{"easting", "easting,northing,elevation\n642735.8,8304292.0,1189.2\n642737.6,8304295.3,1189.3\n", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			set, err := LoadCSV(writeFile(t, "pts.csv", tc.content))
			if err != nil {
				t.Fatalf("LoadCSV: %v", err)
			}
			if set.Len() != 2 {
				t.Errorf("got %d points, want 2", set.Len())
			}
			if set.HasZ != tc.wantZ {
				t.Errorf("HasZ = %v, want %v", set.HasZ, tc.wantZ)
			}
		})
	}
}

func TestLoadCSVMissingColumns(t *testing.T) {
	if _, err := LoadCSV(writeFile(t, "bad.csv", "a,b\n1,2\n")); err == nil {
		t.Fatal("expected error for missing coordinate columns")
	}
}

func TestLoadGeoJSONFeatureCollection(t *testing.T) {
	content := `{"type":"FeatureCollection","features":[
		{"type":"Feature","geometry":{"type":"Point","coordinates":[5.914,50.807,45.2]},"properties":{"id":1}},
		{"type":"Feature","geometry":{"type":"Point","coordinates":[5.915,50.808,45.1]},"properties":{"id":2}}
	]}`
	set, err := LoadGeoJSON(writeFile(t, "pts.geojson", content))
	if err != nil {
		t.Fatalf("LoadGeoJSON: %v", err)
	}
	if set.Len() != 2 || !set.HasZ {
		t.Fatalf("got %d points hasZ=%v, want 2 points 3D", set.Len(), set.HasZ)
	}
	if p := set.Points[0]; p.X != 5.914 || p.Y != 50.807 || p.Z != 45.2 {
		t.Errorf("point 0 = %+v", p)
	}
}

func TestLoadGeoJSONMixedDimensions(t *testing.T) {
	content := `{"type":"MultiPoint","coordinates":[[1,2,3],[4,5]]}`
	if _, err := LoadGeoJSON(writeFile(t, "mixed.geojson", content)); err == nil {
		t.Fatal("expected error for mixed dimensionality")
	}
}

func TestLoadKML(t *testing.T) {
	content := `<?xml version="1.0" encoding="UTF-8"?>
<kml xmlns="http://www.opengis.net/kml/2.2"><Document>
  <Placemark><name>p1</name><Point><coordinates>5.914,50.807,44.5</coordinates></Point></Placemark>
  <Placemark><name>p2</name><Point><coordinates>5.915,50.808,44.6</coordinates></Point></Placemark>
</Document></kml>`
	set, err := LoadKML(writeFile(t, "pts.kml", content))
	if err != nil {
		t.Fatalf("LoadKML: %v", err)
	}
	if set.Len() != 2 || !set.HasZ {
		t.Fatalf("got %d points hasZ=%v, want 2 points 3D", set.Len(), set.HasZ)
	}
}

func TestLoadFileDispatch(t *testing.T) {
	p := writeFile(t, "pts.wkt", "MULTIPOINT (1 2, 3 4)")
	set, err := LoadFile(p)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if set.Len() != 2 {
		t.Errorf("got %d points, want 2", set.Len())
	}
	if _, err := LoadFile(filepath.Join(t.TempDir(), "pts.shp")); err == nil {
		t.Error("expected error for unsupported extension")
	}
}

func TestParsePointsJSON(t *testing.T) {
	set, err := ParsePointsJSON("[[642735.8,8304292.0],[642737.6,8304295.3]]")
	if err != nil {
		t.Fatalf("ParsePointsJSON: %v", err)
	}
	if set.Len() != 2 || set.HasZ {
		t.Fatalf("got %d points hasZ=%v, want 2 points 2D", set.Len(), set.HasZ)
	}
	for _, bad := range []string{"", "[]", "[[1,2],[3,4,5]]", "[[1],[2]]", "{}"} {
		if _, err := ParsePointsJSON(bad); err == nil {
			t.Errorf("ParsePointsJSON(%q): expected error", bad)
		}
	}
}

func TestBBox(t *testing.T) {
	set := PointSet{Points: []Point{{X: 2, Y: 8}, {X: -1, Y: 3}, {X: 5, Y: 4}}}
	b := set.BBox()
	if b.MinX != -1 || b.MinY != 3 || b.MaxX != 5 || b.MaxY != 8 {
		t.Fatalf("bbox = %+v", b)
	}
	b.Pad(1)
	if b.MinX != -2 || b.MaxY != 9 {
		t.Fatalf("padded bbox = %+v", b)
	}
	if !b.Valid() {
		t.Fatal("padded bbox should be valid")
	}
}

func TestLoadKMLNoPlacemark(t *testing.T) {
	content := `<?xml version="1.0"?><kml><Document></Document></kml>`
	if _, err := LoadKML(writeFile(t, "empty.kml", content)); err == nil {
		t.Fatal("expected error for kml without points")
	}
}
