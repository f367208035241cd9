// Package metrics owns the Prometheus collectors exposed on /metrics.
package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "wellness",
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wellness",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "path", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "wellness",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
		[]string{"method", "path"},
	)

	entriesCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wellness",
			Subsystem: "entries",
			Name:      "created_total",
			Help:      "Entries written, by kind.",
		},
		[]string{"kind"},
	)

	entriesDeleted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wellness",
			Subsystem: "entries",
			Name:      "deleted_total",
			Help:      "Entries removed by their owner, by kind.",
		},
		[]string{"kind"},
	)

	sentimentScores = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "wellness",
			Subsystem: "journal",
			Name:      "sentiment_score",
			Help:      "Distribution of sentiment scores assigned to new journal entries.",
			Buckets:   prometheus.LinearBuckets(-1, 0.2, 11),
		},
	)

	registrations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wellness",
			Subsystem: "users",
			Name:      "registrations_total",
			Help:      "Registration attempts by outcome.",
		},
		[]string{"outcome"},
	)
)

func init() {
	Registry.MustRegister(
		httpInFlight,
		httpRequests,
		httpDuration,
		entriesCreated,
		entriesDeleted,
		sentimentScores,
		registrations,
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)
}

// Handler returns an HTTP handler exposing the registered Prometheus metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// TrackInFlight increments the in-flight gauge and returns the matching
// decrement.
func TrackInFlight() func() {
	httpInFlight.Inc()
	return httpInFlight.Dec
}

// ObserveHTTP records one finished request. path should be the route
// pattern, not the raw URL, to keep label cardinality bounded.
func ObserveHTTP(method, path string, status int, d time.Duration) {
	if path == "" {
		path = "unmatched"
	}
	method = strings.ToUpper(method)
	httpRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, path).Observe(d.Seconds())
}

func RecordEntryCreated(kind string) { entriesCreated.WithLabelValues(kind).Inc() }

func RecordEntryDeleted(kind string) { entriesDeleted.WithLabelValues(kind).Inc() }

func ObserveSentiment(score float64) { sentimentScores.Observe(score) }

// RecordRegistration counts a registration attempt; outcome is "created",
// "conflict" or "error".
func RecordRegistration(outcome string) { registrations.WithLabelValues(outcome).Inc() }
