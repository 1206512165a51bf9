package geom

import (
	"encoding/xml"
	"errors"
	"io"
	"os"
	"strconv"
	"strings"
)

// LoadKML extracts Point coordinates from a KML file (Placemark > Point >
// coordinates). KML coordinates are "lon,lat[,alt]"; the set is 3D when the
// first tuple carries an altitude.
func LoadKML(path string) (PointSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return PointSet{}, err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return PointSet{}, err
	}

	type kmlPoint struct {
		Coordinates string `xml:"coordinates"`
	}
	type kmlPlacemark struct {
		Point *kmlPoint `xml:"Point"`
	}
	type kmlDoc struct {
		Placemarks    []kmlPlacemark `xml:"Placemark"`
		DocPlacemarks []kmlPlacemark `xml:"Document>Placemark"`
	}

	var doc kmlDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		return PointSet{}, err
	}
	var set PointSet
	dim := 0
	for _, pm := range append(doc.Placemarks, doc.DocPlacemarks...) {
		if pm.Point == nil {
			continue
		}
		// coordinates may contain multiple tuples separated by whitespace
		for _, tuple := range strings.Fields(pm.Point.Coordinates) {
			vals := strings.Split(tuple, ",")
			if len(vals) < 2 {
				continue
			}
			lon, err1 := strconv.ParseFloat(strings.TrimSpace(vals[0]), 64)
			lat, err2 := strconv.ParseFloat(strings.TrimSpace(vals[1]), 64)
			if err1 != nil || err2 != nil {
				continue
			}
			p := Point{X: lon, Y: lat}
			d := 2
			if len(vals) >= 3 {
				if alt, err3 := strconv.ParseFloat(strings.TrimSpace(vals[2]), 64); err3 == nil {
					d = 3
					p.Z = alt
				}
			}
			if dim == 0 {
				dim = d
				set.HasZ = d == 3
			} else if dim != d {
				return PointSet{}, errors.New("kml: mixed 2D and 3D coordinates")
			}
			set.Points = append(set.Points, p)
		}
	}
	if set.Len() == 0 {
		return PointSet{}, errors.New("kml: no points found")
	}
	return set, nil
}
