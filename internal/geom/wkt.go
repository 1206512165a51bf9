package geom

import (
	"errors"
	"strconv"
	"strings"
)

// ParseWKT extracts destination points from a subset of WKT.
// Supported: POINT, POINT Z, MULTIPOINT, LINESTRING, POLYGON (outer ring; the
// duplicated closing vertex is dropped). Tuples are "x y" or "x y z"; the
// dimensionality of the first tuple fixes the set's dimensionality and
// tuples that do not match it are an error.
func ParseWKT(wkt string) (PointSet, error) {
	s := strings.TrimSpace(wkt)
	if s == "" {
		return PointSet{}, errors.New("empty wkt")
	}
	up := strings.ToUpper(s)

	var set PointSet
	dim := 0
	parseCoords := func(block string) error {
		for _, tup := range strings.Split(block, ",") {
			parts := strings.Fields(strings.TrimSpace(tup))
			if len(parts) < 2 {
				continue
			}
			x, err1 := strconv.ParseFloat(parts[0], 64)
			y, err2 := strconv.ParseFloat(parts[1], 64)
			if err1 != nil || err2 != nil {
				return errors.New("wkt: invalid coordinate tuple " + strconv.Quote(strings.TrimSpace(tup)))
			}
			p := Point{X: x, Y: y}
			if dim == 0 {
				dim = 2
				if len(parts) >= 3 {
					dim = 3
				}
				set.HasZ = dim == 3
			}
			if dim == 3 {
				if len(parts) < 3 {
					return errors.New("wkt: mixed 2D and 3D coordinates")
				}
				z, err3 := strconv.ParseFloat(parts[2], 64)
				if err3 != nil {
					return errors.New("wkt: invalid z in tuple " + strconv.Quote(strings.TrimSpace(tup)))
				}
				p.Z = z
			} else if len(parts) >= 3 {
				return errors.New("wkt: mixed 2D and 3D coordinates")
			}
			set.Points = append(set.Points, p)
		}
		return nil
	}

	inner := func(open, close string) (string, error) {
		i := strings.Index(s, open)
		j := strings.LastIndex(s, close)
		if i < 0 || j <= i {
			return "", errors.New("wkt: invalid geometry")
		}
		return s[i+len(open) : j], nil
	}

	var block string
	var err error
	switch {
	case strings.HasPrefix(up, "POINT"), strings.HasPrefix(up, "MULTIPOINT"), strings.HasPrefix(up, "LINESTRING"):
		block, err = inner("(", ")")
	case strings.HasPrefix(up, "POLYGON"):
		block, err = inner("((", "))")
		if err == nil && strings.Contains(block, ")") {
			// keep only the outer ring
			block = block[:strings.Index(block, ")")]
		}
	default:
		return PointSet{}, errors.New("unsupported wkt type")
	}
	if err != nil {
		return PointSet{}, err
	}
	// MULTIPOINT may wrap each tuple in its own parens
	block = strings.NewReplacer("(", "", ")", "").Replace(block)
	if err := parseCoords(block); err != nil {
		return PointSet{}, err
	}
	if strings.HasPrefix(up, "POLYGON") && set.Len() > 1 {
		first, last := set.Points[0], set.Points[set.Len()-1]
		if first.X == last.X && first.Y == last.Y {
			set.Points = set.Points[:set.Len()-1]
		}
	}
	if set.Len() == 0 {
		return PointSet{}, errors.New("wkt: no coordinates parsed")
	}
	return set, nil
}
