// Package predict computes the visible windows of a low-earth-orbit
// satellite for a ground observer. A pass (rise to set) is discretized into
// fixed-step samples, each sample is tested against a three-part visibility
// predicate (above minimum elevation, sky dark enough, satellite sunlit),
// and the contiguous visible runs become rated window records. Orbital
// propagation itself is delegated to a Propagator.
package predict

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/iss-horizon/horizon/internal/tle"
)

// EventKind classifies a pass event reported by the propagation service.
type EventKind int

const (
	EventRise EventKind = iota
	EventCulmination
	EventSet
)

// String returns the event kind name.
func (k EventKind) String() string {
	switch k {
	case EventRise:
		return "rise"
	case EventCulmination:
		return "culmination"
	case EventSet:
		return "set"
	default:
		return "?"
	}
}

// PassEvent is a single timestamped rise/culmination/set event.
type PassEvent struct {
	Time time.Time
	Kind EventKind
}

// Propagator is the orbital propagation service the engine delegates to.
// Implementations own their timeouts; the engine performs no I/O itself.
type Propagator interface {
	// Events returns the ordered rise/culmination/set events for passes of
	// the satellite over the observer within [t0, t1).
	Events(ctx context.Context, obs Observer, elems tle.Elements, t0, t1 time.Time, minElevDeg float64) ([]PassEvent, error)

	// Geometry returns the per-timestamp pass geometry as parallel arrays.
	Geometry(ctx context.Context, obs Observer, elems tle.Elements, times []time.Time) (SampleSeries, error)
}

// ElementSource supplies orbital element sets by satellite name and URL.
// *tle.Client is the production implementation.
type ElementSource interface {
	Fetch(ctx context.Context, name, url string) (tle.Elements, error)
}

// Params are the tunables of the extraction pipeline.
type Params struct {
	MinElevDeg  float64       // satellite elevation threshold (degrees)
	TwilightDeg float64       // maximum solar elevation for a dark sky (degrees, typically negative)
	SampleStep  time.Duration // spacing of geometry samples within a pass
	MinWindow   time.Duration // windows shorter than this are discarded
	TLEName     string
	TLEURL      string
}

// Predictor runs the full prediction pipeline: TLE acquisition, pass event
// discovery, per-pass sampling and geometry, and window extraction. Passes
// are evaluated one at a time; the merged result is sorted by window start
// regardless of evaluation order.
type Predictor struct {
	params Params
	prop   Propagator
	source ElementSource
	log    *log.Logger
}

// NewPredictor wires a predictor from its collaborators.
func NewPredictor(params Params, prop Propagator, source ElementSource, logger *log.Logger) *Predictor {
	return &Predictor{
		params: params,
		prop:   prop,
		source: source,
		log:    logger,
	}
}

// WindowsNextHours predicts visible windows from now for a number of hours.
func (p *Predictor) WindowsNextHours(ctx context.Context, obs Observer, hours int) ([]Window, error) {
	if hours <= 0 {
		return nil, fmt.Errorf("%w: hours must be positive, got %d", ErrPrediction, hours)
	}
	start := time.Now().UTC()
	return p.WindowsBetween(ctx, obs, start, start.Add(time.Duration(hours)*time.Hour))
}

// WindowsBetween predicts visible windows in the half-open UTC range
// [t0, t1), sorted ascending by start time. An empty range short-circuits to
// an empty result without contacting the propagation service. A rise event
// without a matching set before the range ends is an incomplete pass and is
// skipped.
func (p *Predictor) WindowsBetween(ctx context.Context, obs Observer, t0, t1 time.Time) ([]Window, error) {
	if !t1.After(t0) {
		return nil, nil
	}

	elems, err := p.source.Fetch(ctx, p.params.TLEName, p.params.TLEURL)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch elements: %w", ErrPrediction, err)
	}

	events, err := p.prop.Events(ctx, obs, elems, t0.UTC(), t1.UTC(), p.params.MinElevDeg)
	if err != nil {
		return nil, fmt.Errorf("%w: pass events: %w", ErrPrediction, err)
	}

	var all []Window
	var rise time.Time
	haveRise := false

	for _, ev := range events {
		switch ev.Kind {
		case EventRise:
			rise = ev.Time
			haveRise = true
		case EventSet:
			if !haveRise {
				continue
			}
			windows, err := p.passWindows(ctx, obs, elems, rise, ev.Time)
			if err != nil {
				return nil, err
			}
			all = append(all, windows...)
			haveRise = false
		}
	}

	sort.Slice(all, func(i, j int) bool {
		return all[i].Start.Before(all[j].Start)
	})

	if p.log != nil {
		p.log.Printf("predict: %d windows for %s in [%s, %s)",
			len(all), obs.Name, t0.UTC().Format(time.RFC3339), t1.UTC().Format(time.RFC3339))
	}

	return all, nil
}

// passWindows evaluates a single rise-to-set pass.
func (p *Predictor) passWindows(ctx context.Context, obs Observer, elems tle.Elements, rise, set time.Time) ([]Window, error) {
	times := SampleTimes(rise, set, p.params.SampleStep)

	series, err := p.prop.Geometry(ctx, obs, elems, times)
	if err != nil {
		return nil, fmt.Errorf("%w: pass geometry: %w", ErrPrediction, err)
	}

	windows, err := windowsFromSamples(obs, series, p.params.MinElevDeg, p.params.TwilightDeg, p.params.MinWindow)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPrediction, err)
	}
	return windows, nil
}
