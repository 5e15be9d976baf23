package ctl

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Config fetches and displays the daemon's running configuration.
func Config(baseURL string, jsonOutput bool) error {
	// Decode into a generic map to preserve all fields for both display modes.
	var raw json.RawMessage
	if err := getJSON(baseURL, "/api/config", &raw); err != nil {
		return err
	}

	if jsonOutput {
		var v any
		_ = json.Unmarshal(raw, &v)
		return printJSON(v)
	}

	// Decode into ordered sections for human-readable output.
	var cfg struct {
		Logging struct {
			Level string `json:"level"`
		} `json:"logging"`
		Server struct {
			Bind string `json:"bind"`
		} `json:"server"`
		Station struct {
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
			Name      string  `json:"name"`
			Timezone  string  `json:"timezone"`
		} `json:"station"`
		Predict struct {
			MinElevationDeg  float64 `json:"min_elevation_deg"`
			TwilightDeg      float64 `json:"twilight_deg"`
			SampleSeconds    int     `json:"sample_seconds"`
			MinWindowSeconds int     `json:"min_window_seconds"`
			LookaheadHours   int     `json:"lookahead_hours"`
			RefreshHours     int     `json:"refresh_hours"`
		} `json:"predict"`
		TLE struct {
			Name        string `json:"name"`
			URL         string `json:"url"`
			FallbackURL string `json:"fallback_url"`
		} `json:"tle"`
		Report struct {
			ProjectURL string `json:"project_url"`
		} `json:"report"`
	}
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(header("  DAEMON CONFIGURATION"))
	fmt.Println(colorize(dim, "  "+strings.Repeat("─", 50)))

	section := func(name string) {
		fmt.Printf("\n  %s\n", colorize(bold, "["+name+"]"))
	}
	field := func(key string, val any) {
		fmt.Printf("    %-20s %v\n", colorize(dim, key+":"), val)
	}

	section("logging")
	field("level", cfg.Logging.Level)

	section("server")
	field("bind", cfg.Server.Bind)

	section("station")
	field("name", cfg.Station.Name)
	field("latitude", cfg.Station.Latitude)
	field("longitude", cfg.Station.Longitude)
	field("timezone", cfg.Station.Timezone)

	section("predict")
	field("min_elevation_deg", cfg.Predict.MinElevationDeg)
	field("twilight_deg", cfg.Predict.TwilightDeg)
	field("sample_seconds", cfg.Predict.SampleSeconds)
	field("min_window_seconds", cfg.Predict.MinWindowSeconds)
	field("lookahead_hours", cfg.Predict.LookaheadHours)
	field("refresh_hours", cfg.Predict.RefreshHours)

	section("tle")
	field("name", cfg.TLE.Name)
	field("url", cfg.TLE.URL)
	field("fallback_url", cfg.TLE.FallbackURL)

	section("report")
	field("project_url", cfg.Report.ProjectURL)

	fmt.Println()

	return nil
}
