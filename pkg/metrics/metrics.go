package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RecordRequest records one analytics service request with its duration
func (r *Registry) RecordRequest(endpoint, status string, duration time.Duration) {
	r.RequestsTotal.WithLabelValues(endpoint, status).Inc()
	r.RequestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

// RecordStaleDrop records a discarded async result.
// kind is "detail" or "search".
func (r *Registry) RecordStaleDrop(kind string) {
	r.StaleResultsDropped.WithLabelValues(kind).Inc()
}

// SetSnapshotSize records the size of the loaded snapshot
func (r *Registry) SetSnapshotSize(nodes, edges int) {
	r.SnapshotNodes.Set(float64(nodes))
	r.SnapshotEdges.Set(float64(edges))
}

// Handler returns an HTTP handler serving this registry's metrics
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Serve exposes the metrics handler on addr. It blocks; callers run it in
// a goroutine.
func (r *Registry) Serve(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", r.Handler())
	return http.ListenAndServe(addr, mux)
}
