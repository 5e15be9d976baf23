package propagate

import (
	"math"
	"testing"
	"time"
)

func TestJulianDate_J2000Epoch(t *testing.T) {
	// 2000-01-01 12:00 UTC is JD 2451545.0 exactly.
	jd := julianDate(time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC))
	if math.Abs(jd-2451545.0) > 1e-9 {
		t.Errorf("julianDate(J2000) = %.9f, want 2451545.0", jd)
	}
}

func TestJulianDate_KnownDates(t *testing.T) {
	cases := []struct {
		in   time.Time
		want float64
	}{
		{time.Date(1999, 12, 31, 12, 0, 0, 0, time.UTC), 2451544.0},
		{time.Date(2000, 1, 2, 0, 0, 0, 0, time.UTC), 2451545.5},
		{time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), 2461100.5},
	}
	for _, tc := range cases {
		got := julianDate(tc.in)
		if math.Abs(got-tc.want) > 1e-6 {
			t.Errorf("julianDate(%s) = %.6f, want %.6f", tc.in, got, tc.want)
		}
	}
}

func TestGMST_RangeAndAdvance(t *testing.T) {
	t0 := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	g0 := gmst(t0)
	if g0 < 0 || g0 >= 2*math.Pi {
		t.Errorf("gmst = %f, want [0, 2π)", g0)
	}

	// Sidereal time advances ~360.9856 degrees per solar day; over one hour
	// that is a bit more than 15 degrees.
	g1 := gmst(t0.Add(time.Hour))
	delta := math.Mod(g1-g0+2*math.Pi, 2*math.Pi) * radToDeg
	if math.Abs(delta-15.041) > 0.01 {
		t.Errorf("gmst advanced %.4f deg in one hour, want ~15.041", delta)
	}
}

func TestNewGroundSite_ECEFMagnitude(t *testing.T) {
	// Sea-level site on the equator sits at the WGS-84 equatorial radius.
	eq := newGroundSite(0, 0, 0)
	if mag := eq.ecefKm.norm(); math.Abs(mag-6378.137) > 0.001 {
		t.Errorf("equatorial site magnitude = %.3f km, want 6378.137", mag)
	}

	// Polar site sits at the polar radius.
	pole := newGroundSite(90, 0, 0)
	if mag := pole.ecefKm.norm(); math.Abs(mag-6356.7523) > 0.001 {
		t.Errorf("polar site magnitude = %.4f km, want 6356.7523", mag)
	}
}

func TestLookAngles_Zenith(t *testing.T) {
	site := newGroundSite(0, 0, 0)

	// Target straight up from the equatorial site.
	target := site.ecefKm.scale((site.ecefKm.norm() + 400) / site.ecefKm.norm())
	_, elev := site.lookAngles(target)
	if math.Abs(elev-90) > 0.01 {
		t.Errorf("zenith elevation = %.3f, want 90", elev)
	}
}

func TestLookAngles_CardinalAzimuths(t *testing.T) {
	site := newGroundSite(0, 0, 0)

	// From the equator at lon 0, a target north along +Z is azimuth 0 and a
	// target east along +Y is azimuth 90.
	north := vec3{site.ecefKm.X, 0, 1000}
	azN, _ := site.lookAngles(north)
	if math.Abs(azN) > 0.5 && math.Abs(azN-360) > 0.5 {
		t.Errorf("north target azimuth = %.2f, want ~0", azN)
	}

	east := vec3{site.ecefKm.X, 1000, 0}
	azE, _ := site.lookAngles(east)
	if math.Abs(azE-90) > 0.5 {
		t.Errorf("east target azimuth = %.2f, want ~90", azE)
	}
}

func TestTemeToECEF_ZeroAngleIdentity(t *testing.T) {
	v := vec3{1000, 2000, 3000}
	got := temeToECEF(v, 0)
	if got != v {
		t.Errorf("rotation by zero changed vector: %+v", got)
	}

	// A quarter rotation maps +X onto -Y.
	got = temeToECEF(vec3{1, 0, 0}, math.Pi/2)
	if math.Abs(got.X) > 1e-12 || math.Abs(got.Y+1) > 1e-12 {
		t.Errorf("quarter rotation = %+v, want {0 -1 0}", got)
	}
}
