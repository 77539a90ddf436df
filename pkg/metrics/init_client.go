package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initGatewayMetrics() {
	r.RequestsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "orglens_requests_total",
			Help: "Total number of analytics service requests",
		},
		[]string{"endpoint", "status"},
	)

	r.RequestDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "orglens_request_duration_seconds",
			Help:    "Analytics service request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	r.RequestsInFlight = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "orglens_requests_in_flight",
			Help: "Current number of in-flight analytics service requests",
		},
	)
}

func (r *Registry) initStreamMetrics() {
	r.StreamChunksTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "orglens_stream_chunks_total",
			Help: "Total text chunks received on chat streams",
		},
	)

	r.StreamFailuresTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "orglens_stream_failures_total",
			Help: "Chat streams that ended with a transport failure",
		},
	)

	r.MalformedFramesTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "orglens_malformed_frames_total",
			Help: "Unparseable chat stream frames that were skipped",
		},
	)
}

func (r *Registry) initInteractionMetrics() {
	r.StaleResultsDropped = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "orglens_stale_results_dropped_total",
			Help: "Async results discarded because a newer request superseded them",
		},
		[]string{"kind"},
	)

	r.DebounceFires = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "orglens_debounce_fires_total",
			Help: "Search debounce windows that elapsed and fired",
		},
	)

	r.DeepLinkApplied = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "orglens_deep_link_applied_total",
			Help: "Deep-link targets applied after snapshot load",
		},
	)

	r.SelectionsTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "orglens_selections_total",
			Help: "Explicit node selections",
		},
	)

	r.SnapshotNodes = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "orglens_snapshot_nodes",
			Help: "Nodes in the loaded graph snapshot",
		},
	)

	r.SnapshotEdges = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "orglens_snapshot_edges",
			Help: "Edges in the loaded graph snapshot",
		},
	)
}
