// Package metrics exposes internal engine counters as Prometheus
// collectors (tick duration, entity count, event-bus depth). Nothing
// here binds an HTTP server — admin/HTTP inspection is out of scope
// (spec.md §1) — Handler is exported so an out-of-scope admin surface
// can mount it.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collectors bundles the engine's Prometheus metrics.
type Collectors struct {
	TickDuration prometheus.Histogram
	EntityCount  prometheus.Gauge
	EventDepth   prometheus.Gauge
	registry     *prometheus.Registry
}

// New registers a fresh set of collectors on a private registry (not
// the global default, so multiple engines in one process, as in
// tests, never collide).
func New() *Collectors {
	reg := prometheus.NewRegistry()
	c := &Collectors{
		TickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "ownworld_tick_duration_seconds",
			Help:    "Wall time spent executing one engine tick.",
			Buckets: prometheus.DefBuckets,
		}),
		EntityCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "ownworld_entity_count",
			Help: "Sum of the main component repositories' sizes (an entity counts once per such component it carries).",
		}),
		EventDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "ownworld_event_bus_depth",
			Help: "Number of unconsumed-by-someone events retained on the event bus.",
		}),
		registry: reg,
	}
	reg.MustRegister(c.TickDuration, c.EntityCount, c.EventDepth)
	return c
}

// Handler returns an http.Handler serving this Collectors' registry in
// the Prometheus exposition format, for an out-of-scope admin HTTP
// surface to mount.
func (c *Collectors) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
