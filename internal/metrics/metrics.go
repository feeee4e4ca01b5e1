package metrics

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "homesale"

// Metrics holds the simulator's collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	EventsEmitted      prometheus.Counter
	EventsPersisted    prometheus.Counter
	WriteErrors        prometheus.Counter
	WriteDuration      prometheus.Histogram
	Periods            prometheus.Counter
	EconomicConditions prometheus.Gauge
}

// New creates and registers all collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		EventsEmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "simulator",
			Name:      "events_emitted_total",
			Help:      "Total home sale events produced by the generator",
		}),
		EventsPersisted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "writer",
			Name:      "events_persisted_total",
			Help:      "Total events committed to the event store",
		}),
		WriteErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "writer",
			Name:      "write_errors_total",
			Help:      "Total failed event writes",
		}),
		WriteDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "writer",
			Name:      "write_duration_seconds",
			Help:      "Insert and commit latency per event",
			Buckets:   prometheus.DefBuckets,
		}),
		Periods: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "simulator",
			Name:      "periods_total",
			Help:      "Total simulation periods started",
		}),
		EconomicConditions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "simulator",
			Name:      "economic_conditions",
			Help:      "Price multiplier applied in the current period",
		}),
	}

	m.registry.MustRegister(
		m.EventsEmitted,
		m.EventsPersisted,
		m.WriteErrors,
		m.WriteDuration,
		m.Periods,
		m.EconomicConditions,
	)
	return m
}

// Registry exposes the underlying registry, mostly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Pinger reports store health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler serves /metrics and /health. db may be nil in dry-run mode.
func (m *Metrics) Handler(db Pinger) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		health := struct {
			Status     string         `json:"status"`
			Components map[string]any `json:"components"`
		}{
			Status:     "healthy",
			Components: make(map[string]any),
		}

		switch {
		case db == nil:
			health.Components["postgres"] = "disabled"
		default:
			if err := db.Ping(ctx); err != nil {
				health.Status = "unhealthy"
				health.Components["postgres"] = map[string]string{
					"status": "disconnected",
					"error":  err.Error(),
				}
			} else {
				health.Components["postgres"] = "connected"
			}
		}

		w.Header().Set("Content-Type", "application/json")
		if health.Status == "unhealthy" {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		json.NewEncoder(w).Encode(health)
	})

	return mux
}
