package transform

import (
	"fmt"
	"math"
)

// Projection converts between a projected CRS and WGS84 lon/lat degrees.
type Projection interface {
	ToWGS84(x, y float64) (lon, lat float64)
	FromWGS84(lon, lat float64) (x, y float64)
	EPSG() int
}

// ForCode returns the projection for an EPSG code. Supported: 4326, 3857,
// and the UTM ranges 32601-32660 (north) and 32701-32760 (south).
func ForCode(c Code) (Projection, error) {
	switch {
	case c == WGS84:
		return wgs84{}, nil
	case c == WebMercator:
		return webMercator{}, nil
	case c >= 32601 && c <= 32660:
		return utm{zone: int(c) - 32600}, nil
	case c >= 32701 && c <= 32760:
		return utm{zone: int(c) - 32700, south: true}, nil
	}
	return nil, fmt.Errorf("unsupported crs %s", c)
}

type wgs84 struct{}

func (wgs84) ToWGS84(x, y float64) (float64, float64)       { return x, y }
func (wgs84) FromWGS84(lon, lat float64) (float64, float64) { return lon, lat }
func (wgs84) EPSG() int                                     { return 4326 }

// webMercator is the spherical mercator projection used by slippy-map tiles.
type webMercator struct{}

const earthRadius = 6378137.0

func (webMercator) FromWGS84(lon, lat float64) (float64, float64) {
	x := earthRadius * lon * math.Pi / 180
	y := earthRadius * math.Log(math.Tan(math.Pi/4+lat*math.Pi/360))
	return x, y
}

func (webMercator) ToWGS84(x, y float64) (float64, float64) {
	lon := x / earthRadius * 180 / math.Pi
	lat := (2*math.Atan(math.Exp(y/earthRadius)) - math.Pi/2) * 180 / math.Pi
	return lon, lat
}

func (webMercator) EPSG() int { return 3857 }
