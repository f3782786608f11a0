// Package metrics exposes Prometheus instruments for the API and the
// counter reconciliation rules.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	CounterAdjustments = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "agora_counter_adjustments_total",
		Help: "Atomic post counter adjustments by field and direction.",
	}, []string{"field", "direction"})

	CounterWriteFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "agora_counter_write_failures_total",
		Help: "Counter writes that failed after the ledger write succeeded.",
	}, []string{"field"})

	EventPublishFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "agora_event_publish_failures_total",
		Help: "Domain events that could not be published.",
	}, []string{"subject"})

	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "agora_http_requests_total",
		Help: "HTTP requests by route pattern, method and status.",
	}, []string{"route", "method", "status"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "agora_http_request_duration_seconds",
		Help:    "HTTP request latency by route pattern.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route", "method"})
)

// Handler serves the Prometheus exposition format
func Handler() http.Handler {
	return promhttp.Handler()
}

// Instrument records request counts and latency per chi route pattern.
// It must be installed on a chi router so the pattern is resolved.
func Instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		httpRequests.WithLabelValues(route, r.Method, strconv.Itoa(status)).Inc()
		httpDuration.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
	})
}
