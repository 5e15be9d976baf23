package app

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/iss-horizon/horizon/internal/config"
	"github.com/iss-horizon/horizon/internal/predict"
	"github.com/iss-horizon/horizon/internal/scheduler"
	"github.com/iss-horizon/horizon/internal/tle"
	"github.com/iss-horizon/horizon/internal/ws"
)

// scriptedPropagator produces one visible pass per requested range.
type scriptedPropagator struct{}

func (scriptedPropagator) Events(_ context.Context, _ predict.Observer, _ tle.Elements, t0, t1 time.Time, _ float64) ([]predict.PassEvent, error) {
	rise := t0.Add(30 * time.Minute)
	return []predict.PassEvent{
		{Time: rise, Kind: predict.EventRise},
		{Time: rise.Add(3 * time.Minute), Kind: predict.EventCulmination},
		{Time: rise.Add(6 * time.Minute), Kind: predict.EventSet},
	}, nil
}

func (scriptedPropagator) Geometry(_ context.Context, _ predict.Observer, _ tle.Elements, times []time.Time) (predict.SampleSeries, error) {
	s := predict.SampleSeries{
		Times:     times,
		ElevDeg:   make([]float64, len(times)),
		AzDeg:     make([]float64, len(times)),
		SunAltDeg: make([]float64, len(times)),
		Sunlit:    make([]bool, len(times)),
	}
	for i := range times {
		s.ElevDeg[i] = 45
		s.AzDeg[i] = 180
		s.SunAltDeg[i] = -20
		s.Sunlit[i] = true
	}
	return s, nil
}

type staticElements struct{}

func (staticElements) Fetch(context.Context, string, string) (tle.Elements, error) {
	return tle.Elements{Name: "ISS (ZARYA)", Line1: "1 ...", Line2: "2 ..."}, nil
}

func testApp(t *testing.T) *App {
	t.Helper()
	cfg := config.Default()
	logger := log.New(io.Discard, "", 0)

	obs, err := predict.NewObserver(cfg.Station.Latitude, cfg.Station.Longitude, cfg.Station.Name, cfg.Station.Timezone)
	if err != nil {
		t.Fatal(err)
	}

	p := predict.NewPredictor(predict.Params{
		MinElevDeg:  cfg.Predict.MinElevationDeg,
		TwilightDeg: cfg.Predict.TwilightDeg,
		SampleStep:  time.Duration(cfg.Predict.SampleSeconds) * time.Second,
		MinWindow:   time.Duration(cfg.Predict.MinWindowSeconds) * time.Second,
		TLEName:     cfg.TLE.Name,
		TLEURL:      cfg.TLE.URL,
	}, scriptedPropagator{}, staticElements{}, logger)

	a := &App{
		log:       logger,
		cfg:       cfg,
		startedAt: time.Now(),
		observer:  obs,
		predictor: p,
		wsHub:     ws.NewHub(),
		runner:    scheduler.New(ws.NewHub(), logger, p, obs, 48*time.Hour, 6*time.Hour),
	}
	a.state.Store("IDLE")
	return a
}

func TestHandleStatus(t *testing.T) {
	a := testApp(t)

	rec := httptest.NewRecorder()
	a.handleStatus(rec, httptest.NewRequest(http.MethodGet, "/api/status", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp struct {
		Name    string `json:"name"`
		State   string `json:"state"`
		Station struct {
			Name string `json:"name"`
		} `json:"station"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Name != "horizon" || resp.State != "IDLE" {
		t.Errorf("resp = %+v", resp)
	}
	if resp.Station.Name != "Greenwich" {
		t.Errorf("station name = %q", resp.Station.Name)
	}
}

func TestHandleWindows(t *testing.T) {
	a := testApp(t)

	rec := httptest.NewRecorder()
	a.handleWindows(rec, httptest.NewRequest(http.MethodGet, "/api/windows?hours=24", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Hours   int `json:"hours"`
		Windows []struct {
			StartLocal      string  `json:"start_local"`
			DurationSeconds int     `json:"duration_seconds"`
			PeakElevDeg     float64 `json:"peak_elevation_deg"`
			PeakDirection   string  `json:"peak_direction"`
			VisibilityStars int     `json:"visibility_stars"`
			VisibilityLabel string  `json:"visibility_label"`
		} `json:"windows"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Hours != 24 {
		t.Errorf("hours = %d, want 24", resp.Hours)
	}
	if len(resp.Windows) == 0 {
		t.Fatal("no windows returned")
	}

	win := resp.Windows[0]
	if win.PeakElevDeg != 45 {
		t.Errorf("peak elevation = %v", win.PeakElevDeg)
	}
	if win.PeakDirection != "S" {
		t.Errorf("peak direction = %q, want S for azimuth 180", win.PeakDirection)
	}
	if win.VisibilityStars < 1 || win.VisibilityStars > 5 {
		t.Errorf("stars = %d", win.VisibilityStars)
	}
	if !strings.Contains(win.VisibilityLabel, "★") {
		t.Errorf("label = %q", win.VisibilityLabel)
	}
	if _, err := time.Parse(time.RFC3339, win.StartLocal); err != nil {
		t.Errorf("start_local %q is not RFC3339: %v", win.StartLocal, err)
	}
}

func TestHandleWindows_RejectsBadHours(t *testing.T) {
	a := testApp(t)

	for _, q := range []string{"hours=0", "hours=-3", "hours=abc"} {
		rec := httptest.NewRecorder()
		a.handleWindows(rec, httptest.NewRequest(http.MethodGet, "/api/windows?"+q, nil))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", q, rec.Code)
		}
	}
}

func TestHandleReport_FormatValidation(t *testing.T) {
	a := testApp(t)

	rec := httptest.NewRecorder()
	a.handleReport(rec, httptest.NewRequest(http.MethodGet, "/api/report?format=pdf", nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad format: status = %d, want 400", rec.Code)
	}

	rec = httptest.NewRecorder()
	a.handleReport(rec, httptest.NewRequest(http.MethodGet, "/api/report?month=13", nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("month 13: status = %d, want 400", rec.Code)
	}
}

func TestHandleReport_TextAndJSON(t *testing.T) {
	a := testApp(t)

	rec := httptest.NewRecorder()
	a.handleReport(rec, httptest.NewRequest(http.MethodGet, "/api/report?year=2026&month=10&format=text", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("text report: status = %d, body %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "Month: 2026-10") {
		t.Errorf("text report missing month label:\n%s", rec.Body.String())
	}

	rec = httptest.NewRecorder()
	a.handleReport(rec, httptest.NewRequest(http.MethodGet, "/api/report?year=2026&month=10&format=json", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("json report: status = %d", rec.Code)
	}
	var resp struct {
		Month   string            `json:"month"`
		Windows []json.RawMessage `json:"windows"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Month != "2026-10" {
		t.Errorf("month = %q", resp.Month)
	}
	if len(resp.Windows) == 0 {
		t.Error("json report has no windows")
	}
}

func TestHandleTLE(t *testing.T) {
	a := testApp(t)
	a.tleClient = tle.NewClient(tle.Options{
		HTTPClient: &http.Client{Transport: failingTransport{}},
	})

	// Transport failure plus the default satellite name rides the bundled
	// fallback, so the endpoint still serves elements.
	rec := httptest.NewRecorder()
	a.handleTLE(rec, httptest.NewRequest(http.MethodGet, "/api/tle", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var elems tle.Elements
	if err := json.Unmarshal(rec.Body.Bytes(), &elems); err != nil {
		t.Fatal(err)
	}
	if elems.Name != "ISS (ZARYA)" || elems.Line1 == "" {
		t.Errorf("elements = %+v", elems)
	}
}

type failingTransport struct{}

func (failingTransport) RoundTrip(*http.Request) (*http.Response, error) {
	return nil, io.ErrUnexpectedEOF
}

func TestRound2(t *testing.T) {
	if got := round2(52.4567); got != 52.46 {
		t.Errorf("round2(52.4567) = %v", got)
	}
	if got := round2(-0.005); got != -0.0 && got != 0.0 && got != -0.01 {
		t.Errorf("round2(-0.005) = %v", got)
	}
}
