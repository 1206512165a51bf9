package geom

import (
	"encoding/json"
	"errors"
	"io"
	"os"
)

// LoadGeoJSON extracts point coordinates from a GeoJSON file.
// Supports: Point, MultiPoint, Feature, FeatureCollection of Points/MultiPoints.
// A third coordinate, when present on the first point, switches the whole set
// to 3D; features mixing dimensionality are an error.
func LoadGeoJSON(path string) (PointSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return PointSet{}, err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return PointSet{}, err
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return PointSet{}, err
	}
	t, _ := raw["type"].(string)
	if t == "" {
		return PointSet{}, errors.New("invalid geojson: missing type")
	}

	var set PointSet
	dim := 0
	var addErr error
	add := func(v any) {
		if addErr != nil {
			return
		}
		a, ok := v.([]any)
		if !ok || len(a) < 2 {
			return
		}
		x, xok := a[0].(float64)
		y, yok := a[1].(float64)
		if !xok || !yok {
			return
		}
		d := 2
		var z float64
		if len(a) >= 3 {
			if zv, zok := a[2].(float64); zok {
				d = 3
				z = zv
			}
		}
		if dim == 0 {
			dim = d
			set.HasZ = d == 3
		} else if dim != d {
			addErr = errors.New("geojson: mixed 2D and 3D coordinates")
			return
		}
		set.Points = append(set.Points, Point{X: x, Y: y, Z: z})
	}
	addMulti := func(v any) {
		arr, ok := v.([]any)
		if !ok {
			return
		}
		for _, el := range arr {
			add(el)
		}
	}
	walkGeom := func(g map[string]any) {
		switch gt, _ := g["type"].(string); gt {
		case "Point":
			add(g["coordinates"])
		case "MultiPoint":
			addMulti(g["coordinates"])
		}
	}

	switch t {
	case "Point", "MultiPoint":
		walkGeom(raw)
	case "Feature":
		if g, ok := raw["geometry"].(map[string]any); ok {
			walkGeom(g)
		}
	case "FeatureCollection":
		if fs, ok := raw["features"].([]any); ok {
			for _, ft := range fs {
				fm, _ := ft.(map[string]any)
				if g, ok := fm["geometry"].(map[string]any); ok {
					walkGeom(g)
				}
			}
		}
	default:
		return PointSet{}, errors.New("unsupported geojson type: " + t)
	}
	if addErr != nil {
		return PointSet{}, addErr
	}
	if set.Len() == 0 {
		return PointSet{}, errors.New("no points found in geojson")
	}
	return set, nil
}
