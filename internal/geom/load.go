package geom

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// LoadFile reads destination points from a file, dispatching on extension.
// Supported: .geojson/.json, .csv, .wkt, .kml.
func LoadFile(path string) (PointSet, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".geojson", ".json":
		return LoadGeoJSON(path)
	case ".csv":
		return LoadCSV(path)
	case ".kml":
		return LoadKML(path)
	case ".wkt":
		data, err := os.ReadFile(path)
		if err != nil {
			return PointSet{}, err
		}
		return ParseWKT(string(data))
	}
	return PointSet{}, errors.New("unsupported file: " + filepath.Ext(path))
}

// ParseText parses pasted destination points: a JSON literal when the text
// starts with '[', WKT otherwise.
func ParseText(s string) (PointSet, error) {
	t := strings.TrimSpace(s)
	if t == "" {
		return PointSet{}, errors.New("empty input")
	}
	if strings.HasPrefix(t, "[") {
		return ParsePointsJSON(t)
	}
	return ParseWKT(t)
}
