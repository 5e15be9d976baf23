package propagate

import (
	"math"
	"time"
)

const astronomicalUnitKm = 149597870.7

// sunTEME returns the sun's geocentric position in the TEME frame in
// kilometers, using the low-precision solar ephemeris from the Astronomical
// Almanac (accurate to about 0.01 degrees, plenty for twilight and eclipse
// decisions).
func sunTEME(t time.Time) vec3 {
	n := julianDate(t) - j2000JD

	// Mean longitude and mean anomaly of the sun, degrees.
	meanLon := math.Mod(280.460+0.9856474*n, 360.0)
	meanAnom := math.Mod(357.528+0.9856003*n, 360.0) * degToRad

	// Ecliptic longitude with the equation of center.
	eclLon := (meanLon + 1.915*math.Sin(meanAnom) + 0.020*math.Sin(2*meanAnom)) * degToRad

	// Obliquity of the ecliptic.
	obliquity := (23.439 - 4.0e-7*n) * degToRad

	// Distance in AU.
	distAU := 1.00014 - 0.01671*math.Cos(meanAnom) - 0.00014*math.Cos(2*meanAnom)
	distKm := distAU * astronomicalUnitKm

	sinLon := math.Sin(eclLon)
	return vec3{
		X: distKm * math.Cos(eclLon),
		Y: distKm * math.Cos(obliquity) * sinLon,
		Z: distKm * math.Sin(obliquity) * sinLon,
	}
}

// solarElevationDeg returns the sun's elevation above the observer's
// horizon in degrees at time t. Parallax over one Earth radius against one
// AU is negligible here.
func solarElevationDeg(site groundSite, t time.Time) float64 {
	sunECEF := temeToECEF(sunTEME(t), gmst(t))
	_, elev := site.lookAngles(sunECEF)
	return elev
}

// satSunlit reports whether a satellite at the given TEME position (km) is
// in direct sunlight at time t, using a cylindrical Earth-shadow model: the
// satellite is eclipsed when it sits on the anti-sun side and within one
// Earth radius of the shadow axis.
func satSunlit(satTEMEKm vec3, t time.Time) bool {
	sunDir := sunTEME(t)
	sunDir = sunDir.scale(1 / sunDir.norm())

	along := satTEMEKm.dot(sunDir)
	if along >= 0 {
		return true
	}

	perp := satTEMEKm.sub(sunDir.scale(along))
	return perp.norm() > earthRadiusKm
}
