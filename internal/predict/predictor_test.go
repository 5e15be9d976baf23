package predict

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"
	"time"

	"github.com/iss-horizon/horizon/internal/tle"
)

var testLogger = log.New(io.Discard, "", 0)

// fakePropagator implements Propagator with function fields so each test
// can script the propagation service.
type fakePropagator struct {
	events   func(t0, t1 time.Time) ([]PassEvent, error)
	geometry func(times []time.Time) (SampleSeries, error)

	eventCalls    int
	geometryCalls int
}

func (f *fakePropagator) Events(_ context.Context, _ Observer, _ tle.Elements, t0, t1 time.Time, _ float64) ([]PassEvent, error) {
	f.eventCalls++
	return f.events(t0, t1)
}

func (f *fakePropagator) Geometry(_ context.Context, _ Observer, _ tle.Elements, times []time.Time) (SampleSeries, error) {
	f.geometryCalls++
	return f.geometry(times)
}

type fakeSource struct {
	fetch func(name, url string) (tle.Elements, error)
	calls int
}

func (f *fakeSource) Fetch(_ context.Context, name, url string) (tle.Elements, error) {
	f.calls++
	return f.fetch(name, url)
}

func staticSource() *fakeSource {
	return &fakeSource{fetch: func(string, string) (tle.Elements, error) {
		return tle.Elements{Name: "ISS (ZARYA)", Line1: "1 ...", Line2: "2 ..."}, nil
	}}
}

// visibleGeometry returns a geometry function where every sample is visible
// at the given elevation.
func visibleGeometry(elev float64) func(times []time.Time) (SampleSeries, error) {
	return func(times []time.Time) (SampleSeries, error) {
		s := SampleSeries{
			Times:     times,
			ElevDeg:   make([]float64, len(times)),
			AzDeg:     make([]float64, len(times)),
			SunAltDeg: make([]float64, len(times)),
			Sunlit:    make([]bool, len(times)),
		}
		for i := range times {
			s.ElevDeg[i] = elev
			s.SunAltDeg[i] = -20
			s.Sunlit[i] = true
		}
		return s, nil
	}
}

func testParams() Params {
	return Params{
		MinElevDeg:  10,
		TwilightDeg: -10,
		SampleStep:  10 * time.Second,
		MinWindow:   20 * time.Second,
		TLEName:     "ISS (ZARYA)",
		TLEURL:      "http://example.test/stations.txt",
	}
}

func TestWindowsBetween_EmptyRangeShortCircuits(t *testing.T) {
	prop := &fakePropagator{}
	src := staticSource()
	p := NewPredictor(testParams(), prop, src, testLogger)

	t0 := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	windows, err := p.WindowsBetween(context.Background(), testObserver(t), t0, t0)
	if err != nil {
		t.Fatal(err)
	}
	if windows != nil {
		t.Errorf("got %v, want nil", windows)
	}
	if src.calls != 0 || prop.eventCalls != 0 {
		t.Errorf("empty range contacted collaborators: fetch=%d events=%d", src.calls, prop.eventCalls)
	}

	// Reversed range behaves the same.
	if _, err := p.WindowsBetween(context.Background(), testObserver(t), t0, t0.Add(-time.Hour)); err != nil {
		t.Fatal(err)
	}
	if src.calls != 0 {
		t.Errorf("reversed range fetched elements %d times", src.calls)
	}
}

func TestWindowsBetween_MergesAndSortsPasses(t *testing.T) {
	t0 := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	t1 := t0.Add(12 * time.Hour)

	first := t0.Add(1 * time.Hour)
	second := t0.Add(4 * time.Hour)

	prop := &fakePropagator{
		events: func(time.Time, time.Time) ([]PassEvent, error) {
			return []PassEvent{
				{Time: first, Kind: EventRise},
				{Time: first.Add(5 * time.Minute), Kind: EventCulmination},
				{Time: first.Add(10 * time.Minute), Kind: EventSet},
				{Time: second, Kind: EventRise},
				{Time: second.Add(4 * time.Minute), Kind: EventCulmination},
				{Time: second.Add(8 * time.Minute), Kind: EventSet},
			}, nil
		},
		geometry: visibleGeometry(42),
	}

	p := NewPredictor(testParams(), prop, staticSource(), testLogger)
	windows, err := p.WindowsBetween(context.Background(), testObserver(t), t0, t1)
	if err != nil {
		t.Fatal(err)
	}
	if len(windows) != 2 {
		t.Fatalf("got %d windows, want 2", len(windows))
	}
	if prop.geometryCalls != 2 {
		t.Errorf("geometry called %d times, want once per pass", prop.geometryCalls)
	}
	if !windows[0].Start.Before(windows[1].Start) {
		t.Errorf("windows not sorted: %s then %s", windows[0].Start, windows[1].Start)
	}
	if !windows[0].Start.Equal(first) {
		t.Errorf("first window start = %s, want %s", windows[0].Start, first)
	}
}

func TestWindowsBetween_IncompleteRiseDiscarded(t *testing.T) {
	t0 := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	t1 := t0.Add(2 * time.Hour)

	prop := &fakePropagator{
		events: func(time.Time, time.Time) ([]PassEvent, error) {
			// A rise with no matching set before the range ends.
			return []PassEvent{{Time: t0.Add(90 * time.Minute), Kind: EventRise}}, nil
		},
		geometry: visibleGeometry(42),
	}

	p := NewPredictor(testParams(), prop, staticSource(), testLogger)
	windows, err := p.WindowsBetween(context.Background(), testObserver(t), t0, t1)
	if err != nil {
		t.Fatal(err)
	}
	if len(windows) != 0 {
		t.Errorf("got %d windows, want 0", len(windows))
	}
	if prop.geometryCalls != 0 {
		t.Errorf("geometry called %d times for an incomplete pass", prop.geometryCalls)
	}
}

func TestWindowsBetween_FetchErrorWrapped(t *testing.T) {
	src := &fakeSource{fetch: func(string, string) (tle.Elements, error) {
		return tle.Elements{}, tle.ErrNotFound
	}}
	prop := &fakePropagator{
		events: func(time.Time, time.Time) ([]PassEvent, error) {
			t.Fatal("events should not be called when the fetch fails")
			return nil, nil
		},
	}

	p := NewPredictor(testParams(), prop, src, testLogger)
	t0 := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	_, err := p.WindowsBetween(context.Background(), testObserver(t), t0, t0.Add(time.Hour))
	if !errors.Is(err, ErrPrediction) {
		t.Errorf("error = %v, want ErrPrediction in chain", err)
	}
	if !errors.Is(err, tle.ErrNotFound) {
		t.Errorf("error = %v, want tle.ErrNotFound in chain", err)
	}
}

func TestWindowsNextHours_RejectsNonPositive(t *testing.T) {
	p := NewPredictor(testParams(), &fakePropagator{}, staticSource(), testLogger)

	for _, hours := range []int{0, -5} {
		_, err := p.WindowsNextHours(context.Background(), testObserver(t), hours)
		if !errors.Is(err, ErrPrediction) {
			t.Errorf("WindowsNextHours(%d) error = %v, want ErrPrediction", hours, err)
		}
	}
}
