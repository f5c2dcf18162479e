package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "mawc",
	Subsystem: "http",
	Name:      "requests_total",
	Help:      "Total HTTP requests by route and status code.",
}, []string{"method", "route", "status"})

var httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "mawc",
	Subsystem: "http",
	Name:      "request_duration_seconds",
	Help:      "HTTP request latency by route.",
	Buckets:   []float64{.0005, .001, .005, .01, .05, .1, .5, 1},
}, []string{"method", "route"})

var calculations = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "mawc",
	Subsystem: "engine",
	Name:      "calculations_total",
	Help:      "Total calculations by operation and outcome.",
}, []string{"operation", "outcome"})

var appliedRules = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "mawc",
	Subsystem: "engine",
	Name:      "applied_rules_total",
	Help:      "Weekly rates returned, by the min/max rule applied.",
}, []string{"rule"})

func recordCalculation(operation string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	calculations.WithLabelValues(operation, outcome).Inc()
}

// instrument records request counts and latency labelled by the matched
// route pattern.
func instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		httpRequests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		httpDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}
