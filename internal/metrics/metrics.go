// Package metrics exposes Prometheus instruments on a private registry.
package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestInFlight prometheus.Gauge

	trustScores    *prometheus.HistogramVec
	alertsRaised   *prometheus.CounterVec
	matchesServed  prometheus.Histogram
	snapshotsSaved prometheus.Counter
}

func New(service string) *Metrics {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bidroom",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed.",
		},
		[]string{"service", "method", "path", "status"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "bidroom",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)
	requestInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace:   "bidroom",
			Subsystem:   "http",
			Name:        "in_flight_requests",
			Help:        "Number of in-flight HTTP requests.",
			ConstLabels: prometheus.Labels{"service": service},
		},
	)
	trustScores := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "bidroom",
			Subsystem: "trust",
			Name:      "score",
			Help:      "Distribution of computed trust scores.",
			Buckets:   []float64{10, 20, 30, 40, 50, 60, 70, 85, 100},
		},
		[]string{"level"},
	)
	alertsRaised := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bidroom",
			Subsystem: "dashboard",
			Name:      "alerts_total",
			Help:      "Alerts produced by dashboard evaluation, by type.",
		},
		[]string{"type"},
	)
	matchesServed := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "bidroom",
			Subsystem: "matching",
			Name:      "results",
			Help:      "Number of matches returned per request.",
			Buckets:   []float64{0, 1, 2, 3, 5, 10, 20},
		},
	)
	snapshotsSaved := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "bidroom",
			Subsystem: "workspace",
			Name:      "snapshots_saved_total",
			Help:      "Workspace snapshots stored.",
		},
	)

	registry.MustRegister(
		requestTotal,
		requestDuration,
		requestInFlight,
		trustScores,
		alertsRaised,
		matchesServed,
		snapshotsSaved,
	)

	return &Metrics{
		registry:        registry,
		requestTotal:    requestTotal,
		requestDuration: requestDuration,
		requestInFlight: requestInFlight,
		trustScores:     trustScores,
		alertsRaised:    alertsRaised,
		matchesServed:   matchesServed,
		snapshotsSaved:  snapshotsSaved,
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

func (m *Metrics) Middleware(service string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			path := normalizePath(r.URL.Path)
			recorder := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}

			m.requestInFlight.Inc()
			defer m.requestInFlight.Dec()

			next.ServeHTTP(recorder, r)

			m.requestTotal.WithLabelValues(service, r.Method, path, strconv.Itoa(recorder.statusCode)).Inc()
			m.requestDuration.WithLabelValues(service, r.Method, path).Observe(time.Since(start).Seconds())
		})
	}
}

// otherPath labels every request that does not hit a known route.
const otherPath = "other"

var knownPaths = map[string]bool{
	"/health":                            true,
	"/metrics":                           true,
	"/v1/contractors/{id}":               true,
	"/v1/contractors/{id}/trust":         true,
	"/v1/trust/score":                    true,
	"/v1/trust/batch":                    true,
	"/v1/workspaces/{owner}/snapshot":    true,
	"/v1/workspaces/{owner}/dashboard":   true,
	"/v1/workspaces/{owner}/alerts":      true,
	"/v1/workspaces/{owner}/actions":     true,
	"/v1/workspaces/{owner}/report.xlsx": true,
	"/v1/jobs/match":                     true,
}

// normalizePath collapses ids and folds unknown paths into one label so
// cardinality stays bounded.
func normalizePath(path string) string {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) >= 3 && parts[0] == "v1" {
		switch parts[1] {
		case "contractors":
			parts[2] = "{id}"
		case "workspaces":
			parts[2] = "{owner}"
		}
	}
	p := "/" + strings.Join(parts, "/")
	if !knownPaths[p] {
		return otherPath
	}
	return p
}

func (m *Metrics) ObserveTrustScore(score int, level string) {
	m.trustScores.WithLabelValues(level).Observe(float64(score))
}

func (m *Metrics) RecordAlerts(types []string) {
	for _, t := range types {
		m.alertsRaised.WithLabelValues(t).Inc()
	}
}

func (m *Metrics) ObserveMatches(n int) {
	m.matchesServed.Observe(float64(n))
}

func (m *Metrics) RecordSnapshotSaved() {
	m.snapshotsSaved.Inc()
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (w *statusRecorder) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}
