// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors of one process on their own registry.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	// Engine runs
	RunsTotal       *prometheus.CounterVec
	RunDuration     *prometheus.HistogramVec
	PathsSimulated  prometheus.Counter
	Liquidations    *prometheus.CounterVec
	SweepPoints     prometheus.Counter
	LastRunUnixTime prometheus.Gauge

	// HTTP
	HTTPRequests *prometheus.CounterVec
}

// NewMetrics creates a Metrics instance registered on a fresh registry, along
// with the Go runtime and process collectors.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "liqrisk"
	}
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		RunsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "runs_total",
			Help:      "Total number of engine runs by operation and status",
		}, []string{"operation", "status"}),
		RunDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "run_duration_seconds",
			Help:      "Engine run duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		PathsSimulated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "monte_carlo_paths_total",
			Help:      "Total number of simulated price paths",
		}),
		Liquidations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "liquidations_total",
			Help:      "Participation-constrained liquidations by final status",
		}, []string{"status"}),
		SweepPoints: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "sweep_points_total",
			Help:      "Total number of sensitivity sweep points evaluated",
		}),
		LastRunUnixTime: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time of the last successful engine run",
		}),

		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route and status code",
		}, []string{"route", "code"}),
	}
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the underlying registry (tests gather from it).
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// RecordRun records one engine operation.
func (m *Metrics) RecordRun(operation, status string, seconds float64, finishedUnix int64) {
	if m == nil {
		return
	}
	m.RunsTotal.WithLabelValues(operation, status).Inc()
	m.RunDuration.WithLabelValues(operation).Observe(seconds)
	if status == StatusOK {
		m.LastRunUnixTime.Set(float64(finishedUnix))
	}
}

// RecordPaths adds simulated Monte Carlo paths.
func (m *Metrics) RecordPaths(n int) {
	if m == nil {
		return
	}
	m.PathsSimulated.Add(float64(n))
}

// RecordLiquidation counts a liquidation by its status.
func (m *Metrics) RecordLiquidation(status string) {
	if m == nil {
		return
	}
	m.Liquidations.WithLabelValues(status).Inc()
}

// RecordSweep adds evaluated sweep points.
func (m *Metrics) RecordSweep(points int) {
	if m == nil {
		return
	}
	m.SweepPoints.Add(float64(points))
}

// RecordHTTP counts one served request.
func (m *Metrics) RecordHTTP(route string, code int) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(route, statusCode(code)).Inc()
}

// Run status labels.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

func statusCode(code int) string {
	switch {
	case code >= 500:
		return "5xx"
	case code >= 400:
		return "4xx"
	case code >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
