// Package app wires together the HTTP server, WebSocket hub, and the
// prediction scheduler. It owns the daemon's lifecycle and is the single
// source of truth for the current operating state.
package app

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/iss-horizon/horizon/internal/config"
	"github.com/iss-horizon/horizon/internal/metrics"
	"github.com/iss-horizon/horizon/internal/predict"
	"github.com/iss-horizon/horizon/internal/propagate"
	"github.com/iss-horizon/horizon/internal/scheduler"
	"github.com/iss-horizon/horizon/internal/telemetry"
	"github.com/iss-horizon/horizon/internal/tle"
	"github.com/iss-horizon/horizon/internal/ws"
)

// Options holds everything the App needs from the caller.
type Options struct {
	Logger     *log.Logger
	Cfg        config.Config
	Bind       string
	ConfigPath string
}

// App is the top-level daemon process. It manages the HTTP server, the
// WebSocket event hub, and the prediction scheduler.
type App struct {
	log        *log.Logger
	cfg        config.Config
	bind       string
	configPath string
	server     *http.Server

	startedAt time.Time
	state     atomic.Value // current state string (BOOTING, IDLE, PREDICTING)

	observer  predict.Observer
	predictor *predict.Predictor
	tleClient *tle.Client
	runner    *scheduler.Runner
	wsHub     *ws.Hub
}

// New creates an App in the BOOTING state. Call Run to start serving.
// The station in opts.Cfg must already be validated.
func New(opts Options) (*App, error) {
	a := &App{
		log:        opts.Logger,
		cfg:        opts.Cfg,
		bind:       opts.Bind,
		configPath: opts.ConfigPath,
		startedAt:  time.Now(),
		wsHub:      ws.NewHub(),
	}
	a.state.Store("BOOTING")

	obs, err := predict.NewObserver(
		opts.Cfg.Station.Latitude,
		opts.Cfg.Station.Longitude,
		opts.Cfg.Station.Name,
		opts.Cfg.Station.Timezone,
	)
	if err != nil {
		return nil, fmt.Errorf("station: %w", err)
	}
	a.observer = obs

	a.tleClient = tle.NewClient(tle.Options{
		AlternateURL: opts.Cfg.TLE.FallbackURL,
		Observe:      metrics.TLEFetch,
	})

	a.predictor = predict.NewPredictor(predict.Params{
		MinElevDeg:  opts.Cfg.Predict.MinElevationDeg,
		TwilightDeg: opts.Cfg.Predict.TwilightDeg,
		SampleStep:  time.Duration(opts.Cfg.Predict.SampleSeconds) * time.Second,
		MinWindow:   time.Duration(opts.Cfg.Predict.MinWindowSeconds) * time.Second,
		TLEName:     opts.Cfg.TLE.Name,
		TLEURL:      opts.Cfg.TLE.URL,
	}, propagate.NewSGP4(), a.tleClient, opts.Logger)

	a.runner = scheduler.New(
		a.wsHub,
		opts.Logger,
		a.predictor,
		a.observer,
		time.Duration(opts.Cfg.Predict.LookaheadHours)*time.Hour,
		time.Duration(opts.Cfg.Predict.RefreshHours)*time.Hour,
	)

	return a, nil
}

// Run starts the HTTP server, WebSocket hub, heartbeat ticker, and the
// prediction scheduler. It blocks until the context is cancelled or the
// server returns an error.
func (a *App) Run(ctx context.Context) error {
	bind := a.bind
	if bind == "" && a.cfg.Server.Bind != "" {
		bind = a.cfg.Server.Bind
	}
	if bind == "" {
		bind = "0.0.0.0:8080"
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", a.handleHealthz)
	mux.HandleFunc("/api/status", a.handleStatus)
	mux.HandleFunc("/api/version", a.handleVersion)
	mux.HandleFunc("/api/config", a.handleConfig)
	mux.HandleFunc("/api/windows", a.handleWindows)
	mux.HandleFunc("/api/next", a.handleNext)
	mux.HandleFunc("/api/report", a.handleReport)
	mux.HandleFunc("/api/tle", a.handleTLE)
	mux.HandleFunc("/api/refresh", a.handleRefresh)
	mux.Handle("/metrics", metrics.Handler())
	mux.Handle("/ws", a.wsHub.Handler())

	a.server = &http.Server{
		Addr:              bind,
		Handler:           metrics.Middleware(mux),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ln, err := net.Listen("tcp", bind)
	if err != nil {
		return err
	}

	a.log.Printf("listening on http://%s", bind)

	go a.wsHub.Run(ctx)
	a.transition("IDLE")
	go a.heartbeatLoop(ctx)
	go a.runner.Run(ctx, a.transition)

	go func() {
		<-ctx.Done()
		a.log.Printf("shutdown requested")
		_ = a.server.Shutdown(context.Background())
	}()

	return a.server.Serve(ln)
}

// transition atomically updates the daemon state and broadcasts the change
// to all connected WebSocket clients.
func (a *App) transition(newState string) {
	old := a.state.Load().(string)
	if old == newState {
		return
	}
	a.state.Store(newState)

	a.wsHub.BroadcastJSON(telemetry.StateTransition{
		Event: telemetry.Event{Type: telemetry.EventState, TS: telemetry.NowTS()},
		From:  old,
		To:    newState,
	})
}

// heartbeatLoop sends a periodic heartbeat event so clients can detect
// connectivity and track uptime without polling.
func (a *App) heartbeatLoop(ctx context.Context) {
	t := time.NewTicker(10 * time.Second)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			a.wsHub.BroadcastJSON(telemetry.Heartbeat{
				Event:         telemetry.Event{Type: telemetry.EventHeartbeat, TS: telemetry.NowTS()},
				State:         a.state.Load().(string),
				UptimeSeconds: int64(time.Since(a.startedAt).Seconds()),
			})
		}
	}
}
