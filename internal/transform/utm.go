package transform

import "math"

// utm is the WGS84 transverse mercator projection for a single UTM zone,
// using the USGS series expansion (sub-meter accuracy across a zone).
type utm struct {
	zone  int
	south bool
}

const (
	utmA  = 6378137.0 // WGS84 semi-major axis
	utmF  = 1 / 298.257223563
	utmK0 = 0.9996
	utmFE = 500000.0
	utmFN = 10000000.0 // southern hemisphere false northing
)

func (u utm) EPSG() int {
	if u.south {
		return 32700 + u.zone
	}
	return 32600 + u.zone
}

func (u utm) centralMeridian() float64 { return float64((u.zone-1)*6-180) + 3 }

func (u utm) FromWGS84(lon, lat float64) (float64, float64) {
	e2 := utmF * (2 - utmF)
	ep2 := e2 / (1 - e2)
	phi := lat * math.Pi / 180
	lam := (lon - u.centralMeridian()) * math.Pi / 180

	sin, cos := math.Sin(phi), math.Cos(phi)
	tan := sin / cos
	n := utmA / math.Sqrt(1-e2*sin*sin)
	t := tan * tan
	c := ep2 * cos * cos
	a := lam * cos

	m := meridianArc(phi, e2)
	easting := utmFE + utmK0*n*(a+(1-t+c)*a*a*a/6+
		(5-18*t+t*t+72*c-58*ep2)*math.Pow(a, 5)/120)
	northing := utmK0 * (m + n*tan*(a*a/2+(5-t+9*c+4*c*c)*math.Pow(a, 4)/24+
		(61-58*t+t*t+600*c-330*ep2)*math.Pow(a, 6)/720))
	if u.south {
		northing += utmFN
	}
	return easting, northing
}

func (u utm) ToWGS84(x, y float64) (float64, float64) {
	e2 := utmF * (2 - utmF)
	ep2 := e2 / (1 - e2)
	e1 := (1 - math.Sqrt(1-e2)) / (1 + math.Sqrt(1-e2))

	northing := y
	if u.south {
		northing -= utmFN
	}
	m := northing / utmK0
	mu := m / (utmA * (1 - e2/4 - 3*e2*e2/64 - 5*e2*e2*e2/256))
	phi1 := mu + (3*e1/2-27*math.Pow(e1, 3)/32)*math.Sin(2*mu) +
		(21*e1*e1/16-55*math.Pow(e1, 4)/32)*math.Sin(4*mu) +
		(151*math.Pow(e1, 3)/96)*math.Sin(6*mu) +
		(1097*math.Pow(e1, 4)/512)*math.Sin(8*mu)

	sin1, cos1 := math.Sin(phi1), math.Cos(phi1)
	tan1 := sin1 / cos1
	c1 := ep2 * cos1 * cos1
	t1 := tan1 * tan1
	n1 := utmA / math.Sqrt(1-e2*sin1*sin1)
	r1 := utmA * (1 - e2) / math.Pow(1-e2*sin1*sin1, 1.5)
	d := (x - utmFE) / (n1 * utmK0)

	phi := phi1 - (n1*tan1/r1)*(d*d/2-
		(5+3*t1+10*c1-4*c1*c1-9*ep2)*math.Pow(d, 4)/24+
		(61+90*t1+298*c1+45*t1*t1-252*ep2-3*c1*c1)*math.Pow(d, 6)/720)
	lam := (d - (1+2*t1+c1)*math.Pow(d, 3)/6 +
		(5-2*c1+28*t1-3*c1*c1+8*ep2+24*t1*t1)*math.Pow(d, 5)/120) / cos1

	lat := phi * 180 / math.Pi
	lon := u.centralMeridian() + lam*180/math.Pi
	return lon, lat
}

func meridianArc(phi, e2 float64) float64 {
	return utmA * ((1-e2/4-3*e2*e2/64-5*e2*e2*e2/256)*phi -
		(3*e2/8+3*e2*e2/32+45*e2*e2*e2/1024)*math.Sin(2*phi) +
		(15*e2*e2/256+45*e2*e2*e2/1024)*math.Sin(4*phi) -
		(35*e2*e2*e2/3072)*math.Sin(6*phi))
}
