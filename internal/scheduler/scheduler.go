// Package scheduler runs the periodic prediction loop that keeps the daemon's
// window cache fresh. It recomputes the lookahead horizon on a fixed cadence
// and publishes the result to WebSocket clients.
package scheduler

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/iss-horizon/horizon/internal/metrics"
	"github.com/iss-horizon/horizon/internal/predict"
	"github.com/iss-horizon/horizon/internal/telemetry"
	"github.com/iss-horizon/horizon/internal/ws"
)

// Snapshot is the cached result of the most recent prediction run.
type Snapshot struct {
	Windows    []predict.Window
	RangeStart time.Time
	RangeEnd   time.Time
	ComputedAt time.Time
}

// Runner owns the refresh loop. Between runs it sleeps for the configured
// refresh interval; a Refresh channel send wakes it early.
type Runner struct {
	Hub       *ws.Hub
	Log       *log.Logger
	Predictor *predict.Predictor
	Observer  predict.Observer
	Lookahead time.Duration
	Interval  time.Duration

	// Refresh wakes the loop for an immediate recompute. The optional reply
	// channel receives the error from that run.
	Refresh chan chan error

	mu     sync.RWMutex
	latest Snapshot
}

// New creates a runner. Call Run in a goroutine to start the loop.
func New(hub *ws.Hub, logger *log.Logger, p *predict.Predictor, obs predict.Observer, lookahead, interval time.Duration) *Runner {
	return &Runner{
		Hub:       hub,
		Log:       logger,
		Predictor: p,
		Observer:  obs,
		Lookahead: lookahead,
		Interval:  interval,
		Refresh:   make(chan chan error, 4),
	}
}

// Latest returns the most recent snapshot. The boolean is false until the
// first run completes.
func (r *Runner) Latest() (Snapshot, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.latest, !r.latest.ComputedAt.IsZero()
}

// Run is the refresh loop. It computes once immediately, then again every
// Interval or whenever a Refresh request arrives, until ctx is cancelled.
func (r *Runner) Run(ctx context.Context, setState func(string)) {
	r.logEvent("info", "scheduler started")

	if err := r.compute(ctx, setState); err != nil && ctx.Err() == nil {
		r.Log.Printf("initial prediction failed: %v", err)
	}

	t := time.NewTicker(r.Interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if err := r.compute(ctx, setState); err != nil && ctx.Err() == nil {
				r.Log.Printf("scheduled prediction failed: %v", err)
			}
		case reply := <-r.Refresh:
			err := r.compute(ctx, setState)
			if reply != nil {
				reply <- err
			}
			t.Reset(r.Interval)
		}
	}
}

// compute runs one prediction over the lookahead horizon, stores the
// snapshot, and broadcasts the outcome.
func (r *Runner) compute(ctx context.Context, setState func(string)) error {
	setState("PREDICTING")
	defer setState("IDLE")

	t0 := time.Now().UTC()
	t1 := t0.Add(r.Lookahead)

	started := time.Now()
	windows, err := r.Predictor.WindowsBetween(ctx, r.Observer, t0, t1)
	elapsed := time.Since(started)

	if err != nil {
		metrics.ObservePrediction("error", 0, elapsed)
		r.logEvent("error", "prediction failed: "+err.Error())
		return err
	}
	metrics.ObservePrediction("ok", len(windows), elapsed)

	r.mu.Lock()
	r.latest = Snapshot{
		Windows:    windows,
		RangeStart: t0,
		RangeEnd:   t1,
		ComputedAt: time.Now().UTC(),
	}
	r.mu.Unlock()

	ev := telemetry.WindowsComputed{
		Event:      telemetry.Event{Type: telemetry.EventWindows, TS: telemetry.NowTS()},
		Windows:    len(windows),
		RangeStart: t0.Format(time.RFC3339),
		RangeEnd:   t1.Format(time.RFC3339),
	}
	if len(windows) > 0 {
		ev.NextStart = windows[0].Start.Format(time.RFC3339)
	}
	r.Hub.BroadcastJSON(ev)

	r.Log.Printf("prediction refreshed: %d windows over next %s", len(windows), r.Lookahead)
	return nil
}

func (r *Runner) logEvent(level, message string) {
	r.Hub.BroadcastJSON(telemetry.LogLine{
		Event:   telemetry.Event{Type: telemetry.EventLog, TS: telemetry.NowTS()},
		Level:   level,
		Message: message,
	})
}
