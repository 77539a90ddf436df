// Package metrics instruments the client itself: gateway calls, stream
// consumption, and the supersede/discard events that the interaction layer
// depends on for correctness.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all metrics for the client
type Registry struct {
	// Gateway metrics
	RequestsTotal    *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	RequestsInFlight prometheus.Gauge

	// Chat stream metrics
	StreamChunksTotal    prometheus.Counter
	StreamFailuresTotal  prometheus.Counter
	MalformedFramesTotal prometheus.Counter

	// Interaction metrics
	StaleResultsDropped *prometheus.CounterVec
	DebounceFires       prometheus.Counter
	DeepLinkApplied     prometheus.Counter
	SelectionsTotal     prometheus.Counter

	// Snapshot metrics
	SnapshotNodes prometheus.Gauge
	SnapshotEdges prometheus.Gauge

	registry *prometheus.Registry
}

var (
	// Global registry instance
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the global metrics registry
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		registry: reg,
	}

	r.initGatewayMetrics()
	r.initStreamMetrics()
	r.initInteractionMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}
