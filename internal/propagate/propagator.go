package propagate

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/akhenakh/sgp4"
	satellite "github.com/joshuaferrara/go-satellite"

	"github.com/iss-horizon/horizon/internal/predict"
	"github.com/iss-horizon/horizon/internal/tle"
)

// eventStepSeconds is the propagation step used while scanning for pass
// rise/set events. Finer than the default sample interval so event times
// line up well with the sampled geometry.
const eventStepSeconds = 10

// SGP4 implements predict.Propagator. It is stateless and safe for
// concurrent use; each call parses the element set it is handed.
type SGP4 struct{}

// NewSGP4 returns the SGP4-backed propagation service.
func NewSGP4() *SGP4 {
	return &SGP4{}
}

// Events finds passes of the satellite over the observer within [t0, t1)
// and reports them as rise/culmination/set triples in time order. Passes
// whose maximum elevation stays below minElevDeg are dropped, and a pass
// still above the horizon at t1 is incomplete and is dropped too.
func (s *SGP4) Events(ctx context.Context, obs predict.Observer, elems tle.Elements, t0, t1 time.Time, minElevDeg float64) ([]predict.PassEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	parsed, err := sgp4.ParseTLE(elems.Name + "\n" + elems.Line1 + "\n" + elems.Line2)
	if err != nil {
		return nil, fmt.Errorf("parse elements for %q: %w", elems.Name, err)
	}

	passes, err := parsed.GeneratePasses(obs.Latitude, obs.Longitude, 0, t0, t1, eventStepSeconds)
	if err != nil {
		return nil, fmt.Errorf("generate passes for %q: %w", elems.Name, err)
	}

	var events []predict.PassEvent
	for _, p := range passes {
		if p.MaxElevation < minElevDeg {
			continue
		}
		if p.LOS.After(t1) {
			continue
		}
		events = append(events,
			predict.PassEvent{Time: p.AOS, Kind: predict.EventRise},
			predict.PassEvent{Time: p.MaxElevationTime, Kind: predict.EventCulmination},
			predict.PassEvent{Time: p.LOS, Kind: predict.EventSet},
		)
	}
	return events, nil
}

// Geometry propagates the satellite to each timestamp and returns the
// observer-relative elevation and azimuth alongside the solar elevation and
// the satellite's eclipse state.
func (s *SGP4) Geometry(ctx context.Context, obs predict.Observer, elems tle.Elements, times []time.Time) (predict.SampleSeries, error) {
	if err := ctx.Err(); err != nil {
		return predict.SampleSeries{}, err
	}
	if err := validateLines(elems.Line1, elems.Line2); err != nil {
		return predict.SampleSeries{}, fmt.Errorf("invalid elements for %q: %w", elems.Name, err)
	}

	sat := satellite.TLEToSat(elems.Line1, elems.Line2, satellite.GravityWGS84)
	if sat.Error != 0 {
		return predict.SampleSeries{}, fmt.Errorf("sgp4 init for %q: code=%d %s", elems.Name, sat.Error, sat.ErrorStr)
	}

	site := newGroundSite(obs.Latitude, obs.Longitude, 0)

	n := len(times)
	series := predict.SampleSeries{
		Times:     times,
		ElevDeg:   make([]float64, n),
		AzDeg:     make([]float64, n),
		SunAltDeg: make([]float64, n),
		Sunlit:    make([]bool, n),
	}

	for i, ts := range times {
		t := ts.UTC()
		pos, _ := satellite.Propagate(sat, t.Year(), int(t.Month()), t.Day(), t.Hour(), t.Minute(), t.Second())

		teme := vec3{X: pos.X, Y: pos.Y, Z: pos.Z}
		if err := checkTEME(teme); err != nil {
			return predict.SampleSeries{}, fmt.Errorf("propagate %q at %s: %w", elems.Name, t.Format(time.RFC3339), err)
		}

		ecef := temeToECEF(teme, gmst(t))
		az, elev := site.lookAngles(ecef)

		series.ElevDeg[i] = elev
		series.AzDeg[i] = az
		series.SunAltDeg[i] = solarElevationDeg(site, t)
		series.Sunlit[i] = satSunlit(teme, t)
	}

	return series, nil
}

// validateLines rejects element lines the SGP4 library would choke on.
func validateLines(line1, line2 string) error {
	line1 = strings.TrimSpace(line1)
	line2 = strings.TrimSpace(line2)

	if len(line1) != 69 {
		return fmt.Errorf("line1 length %d, expected 69", len(line1))
	}
	if len(line2) != 69 {
		return fmt.Errorf("line2 length %d, expected 69", len(line2))
	}
	if line1[0] != '1' {
		return fmt.Errorf("line1 must start with '1', got %q", line1[0])
	}
	if line2[0] != '2' {
		return fmt.Errorf("line2 must start with '2', got %q", line2[0])
	}
	return nil
}

// checkTEME flags propagation outputs that are NaN or physically
// unreasonable for an Earth orbit. The underlying library reports some
// failures only through its output values.
func checkTEME(p vec3) error {
	if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsNaN(p.Z) {
		return fmt.Errorf("propagation output is NaN")
	}
	mag := p.norm()
	if mag < 6200 || mag > 50000 {
		return fmt.Errorf("unreasonable position magnitude %.1f km", mag)
	}
	return nil
}
