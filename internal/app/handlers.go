package app

import (
	"encoding/json"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/iss-horizon/horizon/internal/predict"
	"github.com/iss-horizon/horizon/internal/report"
)

func (a *App) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok\n"))
}

func (a *App) handleStatus(w http.ResponseWriter, _ *http.Request) {
	resp := map[string]any{
		"name":           "horizon",
		"state":          a.state.Load().(string),
		"uptime_seconds": int64(time.Since(a.startedAt).Seconds()),
		"satellite":      a.cfg.TLE.Name,
		"station": map[string]any{
			"name":      a.observer.Name,
			"latitude":  a.observer.Latitude,
			"longitude": a.observer.Longitude,
			"timezone":  a.observer.TZName,
		},
	}

	if snap, ok := a.runner.Latest(); ok {
		resp["windows_cached"] = len(snap.Windows)
		resp["computed_at"] = snap.ComputedAt.Format(time.RFC3339)
		resp["range_end"] = snap.RangeEnd.Format(time.RFC3339)

		now := time.Now()
		for _, win := range snap.Windows {
			if win.Start.After(now) {
				resp["next_window"] = windowToJSON(win)
				resp["countdown_s"] = int(time.Until(win.Start).Seconds())
				break
			}
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

func (a *App) handleVersion(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"version":    Version,
		"go_version": GoVersion,
		"built_at":   BuiltAt,
	})
}

func (a *App) handleConfig(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, a.cfg)
}

// handleWindows computes visibility windows for the next N hours on demand.
// Query: hours (default: configured lookahead).
func (a *App) handleWindows(w http.ResponseWriter, r *http.Request) {
	hours := a.cfg.Predict.LookaheadHours
	if s := r.URL.Query().Get("hours"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			jsonError(w, "hours must be a positive integer", http.StatusBadRequest)
			return
		}
		hours = n
	}

	windows, err := a.predictor.WindowsNextHours(r.Context(), a.observer, hours)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadGateway)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"hours":     hours,
		"satellite": a.cfg.TLE.Name,
		"station": map[string]any{
			"name":      a.observer.Name,
			"latitude":  a.observer.Latitude,
			"longitude": a.observer.Longitude,
			"timezone":  a.observer.TZName,
		},
		"windows": windowsToJSON(windows),
	})
}

// handleNext returns only the first upcoming window from the cached snapshot,
// falling back to an on-demand computation when the cache is empty.
func (a *App) handleNext(w http.ResponseWriter, r *http.Request) {
	var windows []predict.Window
	if snap, ok := a.runner.Latest(); ok {
		windows = snap.Windows
	} else {
		computed, err := a.predictor.WindowsNextHours(r.Context(), a.observer, a.cfg.Predict.LookaheadHours)
		if err != nil {
			jsonError(w, err.Error(), http.StatusBadGateway)
			return
		}
		windows = computed
	}

	resp := map[string]any{"window": nil}
	now := time.Now()
	for _, win := range windows {
		if win.Start.After(now) {
			resp["window"] = windowToJSON(win)
			resp["countdown_s"] = int(time.Until(win.Start).Seconds())
			break
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleReport renders a monthly visibility report. Query: year, month
// (default: the month after the current one), format=text|html|json.
func (a *App) handleReport(w http.ResponseWriter, r *http.Request) {
	year, month := report.NextMonth(time.Now().In(a.observer.TZ))

	q := r.URL.Query()
	if s := q.Get("year"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			jsonError(w, "year must be an integer", http.StatusBadRequest)
			return
		}
		year = n
	}
	if s := q.Get("month"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			jsonError(w, "month must be an integer", http.StatusBadRequest)
			return
		}
		month = n
	}

	rng, err := report.MonthRangeFor(a.observer.TZ, year, month)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	windows, err := a.predictor.WindowsBetween(r.Context(), a.observer, rng.Start.UTC(), rng.End.UTC())
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadGateway)
		return
	}

	label := report.MonthLabel(year, month)
	opts := report.Options{
		Satellite:        a.cfg.TLE.Name,
		GeneratedAt:      time.Now().In(a.observer.TZ),
		HasSettings:      true,
		MinElevDeg:       a.cfg.Predict.MinElevationDeg,
		TwilightDeg:      a.cfg.Predict.TwilightDeg,
		SampleSeconds:    a.cfg.Predict.SampleSeconds,
		MinWindowSeconds: a.cfg.Predict.MinWindowSeconds,
		ProjectURL:       a.cfg.Report.ProjectURL,
	}

	switch q.Get("format") {
	case "", "text":
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(report.Text(a.observer, label, windows, opts)))
	case "html":
		page, err := report.HTML(a.observer, label, windows, opts)
		if err != nil {
			jsonError(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(page))
	case "json":
		writeJSON(w, http.StatusOK, map[string]any{
			"month":   label,
			"station": a.observer.Name,
			"windows": windowsToJSON(windows),
		})
	default:
		jsonError(w, "format must be text, html, or json", http.StatusBadRequest)
	}
}

// handleTLE returns the element set currently served by the acquisition
// chain, exercising the cache and fallback policy.
func (a *App) handleTLE(w http.ResponseWriter, r *http.Request) {
	elems, err := a.tleClient.Fetch(r.Context(), a.cfg.TLE.Name, a.cfg.TLE.URL)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadGateway)
		return
	}
	writeJSON(w, http.StatusOK, elems)
}

// handleRefresh forces an immediate recompute of the cached window snapshot.
func (a *App) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	reply := make(chan error, 1)
	select {
	case a.runner.Refresh <- reply:
	default:
		jsonError(w, "refresh already in progress", http.StatusConflict)
		return
	}

	if err := <-reply; err != nil {
		jsonError(w, "refresh failed: "+err.Error(), http.StatusBadGateway)
		return
	}

	snap, _ := a.runner.Latest()
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":          true,
		"windows":     len(snap.Windows),
		"computed_at": snap.ComputedAt.Format(time.RFC3339),
	})
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// jsonError writes a JSON error response.
func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]any{
		"ok":    false,
		"error": msg,
	})
}

type windowJSON struct {
	StartLocal      string  `json:"start_local"`
	EndLocal        string  `json:"end_local"`
	PeakLocal       string  `json:"peak_local"`
	DurationSeconds int     `json:"duration_seconds"`
	PeakElevDeg     float64 `json:"peak_elevation_deg"`
	StartAzDeg      float64 `json:"start_azimuth_deg"`
	PeakAzDeg       float64 `json:"peak_azimuth_deg"`
	EndAzDeg        float64 `json:"end_azimuth_deg"`
	StartDirection  string  `json:"start_direction"`
	PeakDirection   string  `json:"peak_direction"`
	EndDirection    string  `json:"end_direction"`
	VisibilityStars int     `json:"visibility_stars"`
	VisibilityLabel string  `json:"visibility_label"`
}

func windowToJSON(win predict.Window) windowJSON {
	label, _ := report.StarsText(win.Stars)
	return windowJSON{
		StartLocal:      win.Start.Format(time.RFC3339),
		EndLocal:        win.End.Format(time.RFC3339),
		PeakLocal:       win.Peak.Format(time.RFC3339),
		DurationSeconds: int(win.Duration.Seconds()),
		PeakElevDeg:     round2(win.PeakElevDeg),
		StartAzDeg:      round2(win.StartAzDeg),
		PeakAzDeg:       round2(win.PeakAzDeg),
		EndAzDeg:        round2(win.EndAzDeg),
		StartDirection:  win.StartDirection,
		PeakDirection:   win.PeakDirection,
		EndDirection:    win.EndDirection,
		VisibilityStars: win.Stars,
		VisibilityLabel: label,
	}
}

func windowsToJSON(windows []predict.Window) []windowJSON {
	result := make([]windowJSON, len(windows))
	for i, win := range windows {
		result[i] = windowToJSON(win)
	}
	return result
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
