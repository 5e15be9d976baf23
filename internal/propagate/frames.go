// Package propagate implements the prediction engine's propagation service
// contract on top of SGP4. Pass events come from the sgp4 pass generator;
// per-sample geometry is computed from raw TEME propagation rotated into
// Earth-fixed coordinates, with a low-precision solar ephemeris supplying
// sky darkness and the satellite eclipse state.
package propagate

import (
	"math"
	"time"
)

// WGS-84 ellipsoid and rotation constants.
const (
	earthRadiusKm = 6378.137
	wgs84A        = 6378137.0
	wgs84F        = 1.0 / 298.257223563
	wgs84E2       = wgs84F * (2 - wgs84F)

	j2000JD  = 2451545.0
	degToRad = math.Pi / 180.0
	radToDeg = 180.0 / math.Pi
)

// vec3 is a Cartesian vector. Units are whatever the caller put in.
type vec3 struct {
	X, Y, Z float64
}

func (v vec3) dot(o vec3) float64 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

func (v vec3) norm() float64 { return math.Sqrt(v.dot(v)) }

func (v vec3) scale(k float64) vec3 { return vec3{v.X * k, v.Y * k, v.Z * k} }

func (v vec3) sub(o vec3) vec3 { return vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

// julianDate converts a UTC time to Julian Date.
func julianDate(t time.Time) float64 {
	t = t.UTC()
	y := float64(t.Year())
	m := float64(t.Month())
	d := float64(t.Day())

	// Jan/Feb count as months 13/14 of the previous year.
	if m <= 2 {
		y--
		m += 12
	}

	a := math.Floor(y / 100)
	b := 2 - a + math.Floor(a/4)

	jd := math.Floor(365.25*(y+4716)) + math.Floor(30.6001*(m+1)) + d + b - 1524.5

	sec := float64(t.Hour())*3600 + float64(t.Minute())*60 +
		float64(t.Second()) + float64(t.Nanosecond())/1e9
	return jd + sec/86400.0
}

// gmst returns Greenwich Mean Sidereal Time in radians for a UTC time,
// using the IAU-82 polynomial (Vallado Eq 3-47).
func gmst(t time.Time) float64 {
	tu := (julianDate(t) - j2000JD) / 36525.0

	sec := 67310.54841 +
		(3155760000.0+8640184.812866)*tu +
		0.093104*tu*tu -
		6.2e-6*tu*tu*tu

	sec = math.Mod(sec, 86400.0)
	if sec < 0 {
		sec += 86400.0
	}
	return sec / 86400.0 * 2 * math.Pi
}

// temeToECEF rotates a TEME vector into the Earth-fixed frame at the given
// GMST angle. GMST-only rotation ignores polar motion, good to tens of
// meters, which is far below the fidelity of visual pass prediction.
func temeToECEF(teme vec3, theta float64) vec3 {
	cosT := math.Cos(theta)
	sinT := math.Sin(theta)
	return vec3{
		X: teme.X*cosT + teme.Y*sinT,
		Y: -teme.X*sinT + teme.Y*cosT,
		Z: teme.Z,
	}
}

// groundSite is an observer position with its Earth-fixed coordinates
// precomputed once so look angles for many samples stay cheap.
type groundSite struct {
	latRad, lonRad float64
	ecefKm         vec3
}

// newGroundSite converts geodetic coordinates (degrees, meters) to a site
// with WGS-84 ECEF coordinates in kilometers.
func newGroundSite(latDeg, lonDeg, altM float64) groundSite {
	lat := latDeg * degToRad
	lon := lonDeg * degToRad

	sinLat := math.Sin(lat)
	cosLat := math.Cos(lat)

	// Radius of curvature in the prime vertical.
	n := wgs84A / math.Sqrt(1-wgs84E2*sinLat*sinLat)

	x := (n + altM) * cosLat * math.Cos(lon)
	y := (n + altM) * cosLat * math.Sin(lon)
	z := (n*(1-wgs84E2) + altM) * sinLat

	return groundSite{
		latRad: lat,
		lonRad: lon,
		ecefKm: vec3{x / 1000, y / 1000, z / 1000},
	}
}

// lookAngles returns azimuth and elevation in degrees from the site to a
// target given in ECEF kilometers. The range vector is rotated into the
// South-East-Zenith frame (Vallado §4.4); azimuth is measured clockwise
// from North.
func (g groundSite) lookAngles(targetKm vec3) (azDeg, elevDeg float64) {
	r := targetKm.sub(g.ecefKm)

	sinLat := math.Sin(g.latRad)
	cosLat := math.Cos(g.latRad)
	sinLon := math.Sin(g.lonRad)
	cosLon := math.Cos(g.lonRad)

	south := sinLat*cosLon*r.X + sinLat*sinLon*r.Y - cosLat*r.Z
	east := -sinLon*r.X + cosLon*r.Y
	zenith := cosLat*cosLon*r.X + cosLat*sinLon*r.Y + sinLat*r.Z

	rangeMag := math.Sqrt(south*south + east*east + zenith*zenith)

	elev := math.Asin(zenith / rangeMag)
	az := math.Atan2(east, -south)
	if az < 0 {
		az += 2 * math.Pi
	}

	return az * radToDeg, elev * radToDeg
}
