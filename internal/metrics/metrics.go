// Package metrics exposes Prometheus instrumentation for horizond: HTTP
// request counts and latencies, prediction run outcomes, and which source
// ultimately served each TLE request.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "horizon_http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"path", "method", "code"},
	)

	httpDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "horizon_http_duration_seconds",
			Help:    "HTTP request duration in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path", "method"},
	)

	predictionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "horizon_predictions_total",
			Help: "Prediction runs by outcome.",
		},
		[]string{"outcome"},
	)

	predictionWindows = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "horizon_prediction_windows_total",
			Help: "Visibility windows produced across all prediction runs.",
		},
	)

	predictionSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "horizon_prediction_duration_seconds",
			Help:    "Wall time of prediction runs in seconds.",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 12),
		},
	)

	tleFetchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "horizon_tle_fetches_total",
			Help: "TLE requests by the source that served them.",
		},
		[]string{"source"},
	)
)

func init() {
	prometheus.MustRegister(httpRequestsTotal)
	prometheus.MustRegister(httpDurationSeconds)
	prometheus.MustRegister(predictionsTotal)
	prometheus.MustRegister(predictionWindows)
	prometheus.MustRegister(predictionSeconds)
	prometheus.MustRegister(tleFetchesTotal)
}

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObservePrediction records one prediction run.
func ObservePrediction(outcome string, windows int, elapsed time.Duration) {
	predictionsTotal.WithLabelValues(outcome).Inc()
	predictionSeconds.Observe(elapsed.Seconds())
	if windows > 0 {
		predictionWindows.Add(float64(windows))
	}
}

// TLEFetch records which source (cache, primary, alternate, bundled) served
// a TLE request. Shaped to plug straight into tle.Options.Observe.
func TLEFetch(source string) {
	tleFetchesTotal.WithLabelValues(source).Inc()
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Middleware records request count and duration for each request.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(rw, r)

		httpRequestsTotal.WithLabelValues(r.URL.Path, r.Method, strconv.Itoa(rw.statusCode)).Inc()
		httpDurationSeconds.WithLabelValues(r.URL.Path, r.Method).Observe(time.Since(start).Seconds())
	})
}
