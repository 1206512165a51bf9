package geom

import (
	"encoding/csv"
	"errors"
	"os"
	"strconv"
	"strings"
)

// LoadCSV reads destination points from a CSV with coordinate columns.
// Column detection (case-insensitive): x|lon|lng|long|longitude|easting,
// y|lat|latitude|northing, and optionally z|alt|altitude|elevation|h.
// Rows with unparsable coordinates are skipped.
func LoadCSV(path string) (PointSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return PointSet{}, err
	}
	defer f.Close()
	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	recs, err := r.ReadAll()
	if err != nil {
		return PointSet{}, err
	}
	if len(recs) == 0 {
		return PointSet{}, errors.New("empty csv")
	}
	header := recs[0]
	idxX, idxY, idxZ := -1, -1, -1
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "x", "lon", "lng", "long", "longitude", "easting":
			if idxX == -1 {
				idxX = i
			}
		case "y", "lat", "latitude", "northing":
			if idxY == -1 {
				idxY = i
			}
		case "z", "alt", "altitude", "elevation", "h":
			if idxZ == -1 {
				idxZ = i
			}
		}
	}
	if idxX == -1 || idxY == -1 {
		return PointSet{}, errors.New("csv: coordinate columns not found")
	}
	set := PointSet{HasZ: idxZ != -1}
	for _, row := range recs[1:] {
		if idxX >= len(row) || idxY >= len(row) {
			continue
		}
		x, err1 := strconv.ParseFloat(strings.TrimSpace(row[idxX]), 64)
		y, err2 := strconv.ParseFloat(strings.TrimSpace(row[idxY]), 64)
		if err1 != nil || err2 != nil {
			continue
		}
		p := Point{X: x, Y: y}
		if set.HasZ {
			if idxZ >= len(row) {
				continue
			}
			z, err3 := strconv.ParseFloat(strings.TrimSpace(row[idxZ]), 64)
			if err3 != nil {
				continue
			}
			p.Z = z
		}
		set.Points = append(set.Points, p)
	}
	if set.Len() == 0 {
		return PointSet{}, errors.New("csv: no valid points parsed")
	}
	return set, nil
}
