package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "paddock",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "paddock",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "paddock",
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "Number of HTTP requests currently being served",
		},
	)

	// Session metrics
	sessionsSavedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "paddock",
			Subsystem: "session",
			Name:      "saved_total",
			Help:      "Total number of saved setup sessions",
		},
	)

	// Entitlement metrics
	entitlementDenialsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "paddock",
			Subsystem: "entitlement",
			Name:      "denials_total",
			Help:      "Total number of entitlement denials",
		},
		[]string{"reason"},
	)

	usageIncrementFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "paddock",
			Subsystem: "entitlement",
			Name:      "usage_increment_failures_total",
			Help:      "Total number of failed (swallowed) usage counter increments",
		},
	)

	// Billing webhook metrics
	webhookEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "paddock",
			Subsystem: "billing",
			Name:      "webhook_events_total",
			Help:      "Total number of processed billing webhook events",
		},
		[]string{"type", "outcome"},
	)

	// Email metrics
	emailsSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "paddock",
			Subsystem: "email",
			Name:      "sent_total",
			Help:      "Total number of outbound emails",
		},
		[]string{"kind", "outcome"},
	)
)

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Middleware returns a middleware that records Prometheus metrics
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		httpRequestsInFlight.Inc()
		defer httpRequestsInFlight.Dec()

		wrapped := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(wrapped, r)

		duration := time.Since(start).Seconds()

		// Get route pattern from chi
		routePattern := chi.RouteContext(r.Context()).RoutePattern()
		if routePattern == "" {
			routePattern = "unknown"
		}

		status := strconv.Itoa(wrapped.statusCode)

		httpRequestsTotal.WithLabelValues(r.Method, routePattern, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, routePattern, status).Observe(duration)
	})
}

// Handler returns the Prometheus metrics HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordSessionSaved records a saved setup session
func RecordSessionSaved() {
	sessionsSavedTotal.Inc()
}

// RecordEntitlementDenial records a denied gated action
func RecordEntitlementDenial(reason string) {
	entitlementDenialsTotal.WithLabelValues(reason).Inc()
}

// RecordUsageIncrementFailure records a swallowed usage accounting failure
func RecordUsageIncrementFailure() {
	usageIncrementFailures.Inc()
}

// RecordWebhookEvent records a processed billing webhook event
func RecordWebhookEvent(eventType, outcome string) {
	webhookEventsTotal.WithLabelValues(eventType, outcome).Inc()
}

// RecordEmail records an outbound email attempt
func RecordEmail(kind, outcome string) {
	emailsSentTotal.WithLabelValues(kind, outcome).Inc()
}
