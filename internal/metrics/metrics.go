// Package metrics exposes Prometheus collectors for the HTTP surface and for
// plan generation.
package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fitness",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "fitness",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 14), // 5ms to ~40s
		},
		[]string{"method", "route"},
	)

	generations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fitness",
			Subsystem: "generation",
			Name:      "total",
			Help:      "Plan generations by outcome.",
		},
		[]string{"outcome"},
	)

	generationDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "fitness",
			Subsystem: "generation",
			Name:      "duration_seconds",
			Help:      "Wall time of plan generations, including retries.",
			Buckets:   prometheus.ExponentialBuckets(0.25, 2, 9), // 250ms to ~64s
		},
	)

	aiAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fitness",
			Subsystem: "ai",
			Name:      "attempts_total",
			Help:      "Provider calls by plan half and result.",
		},
		[]string{"call", "result"},
	)
)

func init() {
	Registry.MustRegister(
		httpRequests,
		httpDuration,
		generations,
		generationDuration,
		aiAttempts,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler returns an HTTP handler exposing the registered Prometheus metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// GinMiddleware records request counts and latency per matched route.
func GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := strings.ToUpper(c.Request.Method)
		httpRequests.WithLabelValues(method, route, strconv.Itoa(c.Writer.Status())).Inc()
		httpDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}

// RecordGeneration records the outcome of one plan generation.
func RecordGeneration(outcome string, duration time.Duration) {
	if outcome == "" {
		outcome = "unknown"
	}
	generations.WithLabelValues(outcome).Inc()
	generationDuration.Observe(duration.Seconds())
}

// RecordAIAttempt records a single provider call. result is "ok", "retry" or
// "error".
func RecordAIAttempt(call, result string) {
	aiAttempts.WithLabelValues(call, result).Inc()
}
