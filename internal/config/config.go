// Package config handles loading, defaulting, and validation of the
// horizond TOML configuration file. Every section maps to a typed struct so
// the rest of the codebase gets strong typing without manual key lookups.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config is the top-level configuration, mirroring the TOML sections.
type Config struct {
	Logging LoggingConfig `toml:"logging" json:"logging"`
	Server  ServerConfig  `toml:"server"  json:"server"`
	Station StationConfig `toml:"station" json:"station"`
	Predict PredictConfig `toml:"predict" json:"predict"`
	TLE     TLEConfig     `toml:"tle"     json:"tle"`
	Report  ReportConfig  `toml:"report"  json:"report"`
}

type LoggingConfig struct {
	Level string `toml:"level" json:"level"`
}

type ServerConfig struct {
	Bind string `toml:"bind" json:"bind"`
}

// StationConfig is the resolved observer: coordinates, a display name, and
// the IANA timezone all reported window times are converted into.
type StationConfig struct {
	Latitude  float64 `toml:"latitude"  json:"latitude"`
	Longitude float64 `toml:"longitude" json:"longitude"`
	Name      string  `toml:"name"      json:"name"`
	Timezone  string  `toml:"timezone"  json:"timezone"`
}

type PredictConfig struct {
	MinElevationDeg  float64 `toml:"min_elevation_deg"  json:"min_elevation_deg"`
	TwilightDeg      float64 `toml:"twilight_deg"       json:"twilight_deg"`
	SampleSeconds    int     `toml:"sample_seconds"     json:"sample_seconds"`
	MinWindowSeconds int     `toml:"min_window_seconds" json:"min_window_seconds"`
	LookaheadHours   int     `toml:"lookahead_hours"    json:"lookahead_hours"`
	RefreshHours     int     `toml:"refresh_hours"      json:"refresh_hours"`
}

type TLEConfig struct {
	Name        string `toml:"name"         json:"name"`
	URL         string `toml:"url"          json:"url"`
	FallbackURL string `toml:"fallback_url" json:"fallback_url"`
}

type ReportConfig struct {
	ProjectURL string `toml:"project_url" json:"project_url"`
}

// Default returns a Config populated with sane defaults. Values here are
// used whenever the TOML file omits a field.
func Default() Config {
	return Config{
		Logging: LoggingConfig{
			Level: "info",
		},
		Server: ServerConfig{
			Bind: "0.0.0.0:8080",
		},
		Station: StationConfig{
			Latitude:  0.0,
			Longitude: 0.0,
			Name:      "Greenwich",
			Timezone:  "UTC",
		},
		Predict: PredictConfig{
			MinElevationDeg:  12.0,
			TwilightDeg:      -10.0,
			SampleSeconds:    10,
			MinWindowSeconds: 40,
			LookaheadHours:   48,
			RefreshHours:     6,
		},
		TLE: TLEConfig{
			Name:        "ISS (ZARYA)",
			URL:         "https://celestrak.org/NORAD/elements/gp.php?GROUP=stations&FORMAT=tle",
			FallbackURL: "https://celestrak.org/NORAD/elements/gp.php?GROUP=stations&FORMAT=tle",
		},
		Report: ReportConfig{
			ProjectURL: "",
		},
	}
}

// Load reads the TOML file at path, layers it on top of the defaults, and
// validates the result. An error is returned if the file can't be read,
// parsed, or if any constraint is violated.
func Load(path string) (Config, error) {
	cfg := Default()

	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := toml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}

	if err := Validate(cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// Validate checks every constraint a loaded config must satisfy.
func Validate(cfg Config) error {
	if cfg.Station.Latitude < -90 || cfg.Station.Latitude > 90 {
		return errors.New("station.latitude must be between -90 and 90")
	}
	if cfg.Station.Longitude < -180 || cfg.Station.Longitude > 180 {
		return errors.New("station.longitude must be between -180 and 180")
	}
	if cfg.Station.Timezone == "" {
		return errors.New("station.timezone must not be empty")
	}
	if _, err := time.LoadLocation(cfg.Station.Timezone); err != nil {
		return fmt.Errorf("station.timezone: %w", err)
	}
	if cfg.Predict.MinElevationDeg < 0 || cfg.Predict.MinElevationDeg > 90 {
		return errors.New("predict.min_elevation_deg must be between 0 and 90")
	}
	if cfg.Predict.TwilightDeg > 0 {
		return errors.New("predict.twilight_deg must not be positive")
	}
	if cfg.Predict.SampleSeconds < 1 {
		return errors.New("predict.sample_seconds must be >= 1")
	}
	if cfg.Predict.MinWindowSeconds < 0 {
		return errors.New("predict.min_window_seconds must be >= 0")
	}
	if cfg.Predict.LookaheadHours < 1 {
		return errors.New("predict.lookahead_hours must be >= 1")
	}
	if cfg.Predict.RefreshHours < 1 {
		return errors.New("predict.refresh_hours must be >= 1")
	}
	if cfg.TLE.Name == "" {
		return errors.New("tle.name must not be empty")
	}
	if cfg.TLE.URL == "" {
		return errors.New("tle.url must not be empty")
	}
	return nil
}
