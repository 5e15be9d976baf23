package ctl

import (
	"fmt"
	"strings"
	"time"
)

// windowView mirrors the window JSON emitted by the daemon.
type windowView struct {
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

type stationView struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  string  `json:"timezone"`
}

// StatusResponse mirrors the JSON returned by GET /api/status.
type StatusResponse struct {
	Name          string      `json:"name"`
	State         string      `json:"state"`
	UptimeSeconds int64       `json:"uptime_seconds"`
	Satellite     string      `json:"satellite"`
	Station       stationView `json:"station"`
	WindowsCached *int        `json:"windows_cached,omitempty"`
	ComputedAt    string      `json:"computed_at,omitempty"`
	RangeEnd      string      `json:"range_end,omitempty"`
	NextWindow    *windowView `json:"next_window,omitempty"`
	CountdownS    int         `json:"countdown_s,omitempty"`
}

// Status fetches the daemon status and prints a formatted summary.
func Status(baseURL string, jsonOutput bool) error {
	var s StatusResponse
	if err := getJSON(baseURL, "/api/status", &s); err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(s)
	}

	uptime := formatDuration(time.Duration(s.UptimeSeconds) * time.Second)
	stateStr := colorize(stateColor(s.State), s.State)

	fmt.Println()
	fmt.Println(header("  HORIZON STATUS"))
	fmt.Println(colorize(dim, "  "+strings.Repeat("─", 44)))
	fmt.Printf("  %-12s %s\n", colorize(dim, "Daemon:"), s.Name)
	fmt.Printf("  %-12s %s\n", colorize(dim, "State:"), stateStr)
	fmt.Printf("  %-12s %s\n", colorize(dim, "Uptime:"), uptime)
	fmt.Printf("  %-12s %s\n", colorize(dim, "Satellite:"), s.Satellite)
	fmt.Printf("  %-12s %s (%.4f, %.4f) %s\n",
		colorize(dim, "Station:"),
		s.Station.Name, s.Station.Latitude, s.Station.Longitude,
		colorize(dim, s.Station.Timezone),
	)

	if s.WindowsCached != nil {
		fmt.Printf("  %-12s %d (computed %s)\n",
			colorize(dim, "Cached:"), *s.WindowsCached, formatLocalTime(s.ComputedAt))
	}

	if s.NextWindow != nil {
		win := s.NextWindow
		countdown := formatDuration(time.Duration(s.CountdownS) * time.Second)
		fmt.Println()
		fmt.Printf("  %s\n", header("  NEXT WINDOW"))
		fmt.Printf("    %-12s %s %s\n", colorize(dim, "Starts:"), formatLocalTime(win.StartLocal), colorize(dim, "(in "+countdown+")"))
		fmt.Printf("    %-12s %.1f° %s\n", colorize(dim, "Peak:"), win.PeakElevDeg, win.PeakDirection)
		fmt.Printf("    %-12s %s\n", colorize(dim, "Duration:"), formatDuration(time.Duration(win.DurationSeconds)*time.Second))
		fmt.Printf("    %-12s %s\n", colorize(dim, "Rating:"), starBar(win.VisibilityStars))
	}

	fmt.Println()
	return nil
}
