package geom

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ParsePointsJSON parses a JSON literal of the form [[x,y],...] or
// [[x,y,z],...] into a PointSet. Dimensionality must be uniform across all
// entries; mixing 2D and 3D coordinates is an error.
func ParsePointsJSON(s string) (PointSet, error) {
	var raw [][]float64
	if err := json.Unmarshal([]byte(s), &raw); err != nil {
		return PointSet{}, fmt.Errorf("points json: %w", err)
	}
	if len(raw) == 0 {
		return PointSet{}, errors.New("points json: empty list")
	}
	dim := len(raw[0])
	if dim != 2 && dim != 3 {
		return PointSet{}, fmt.Errorf("points json: entry 0 has %d coordinates, want 2 or 3", dim)
	}
	set := PointSet{Points: make([]Point, 0, len(raw)), HasZ: dim == 3}
	for i, c := range raw {
		if len(c) != dim {
			return PointSet{}, fmt.Errorf("points json: entry %d has %d coordinates, want %d", i, len(c), dim)
		}
		p := Point{X: c[0], Y: c[1]}
		if dim == 3 {
			p.Z = c[2]
		}
		set.Points = append(set.Points, p)
	}
	return set, nil
}
