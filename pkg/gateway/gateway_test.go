package gateway

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/orglens/orglens/pkg/metrics"
)

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewClient(srv.URL, 5*time.Second, 5*time.Second, WithMetrics(metrics.NewRegistry()))
}

func TestGraphDecodesPayload(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/graph" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("X-Request-ID") == "" {
			t.Error("missing X-Request-ID header")
		}
		w.Write([]byte(`{
			"nodes": [{"id": "a@corp.com", "name": "Alice", "email": "a@corp.com", "pagerank": 0.04}],
			"edges": [{"source": "a@corp.com", "target": "b@corp.com", "weight": 0.7}]
		}`))
	}))

	payload, err := c.Graph(context.Background())
	if err != nil {
		t.Fatalf("Graph: %v", err)
	}
	if len(payload.Nodes) != 1 || payload.Nodes[0].Name != "Alice" {
		t.Errorf("nodes = %+v", payload.Nodes)
	}
	if len(payload.Edges) != 1 || payload.Edges[0].Weight != 0.7 {
		t.Errorf("edges = %+v", payload.Edges)
	}
}

func TestRequestsInFlightGaugeTracksDo(t *testing.T) {
	reg := metrics.NewRegistry()

	var during float64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		during = testutil.ToFloat64(reg.RequestsInFlight)
		w.Write([]byte(`{"nodes": [], "edges": []}`))
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL, 5*time.Second, 5*time.Second, WithMetrics(reg))
	if _, err := c.Graph(context.Background()); err != nil {
		t.Fatalf("Graph: %v", err)
	}

	if during != 1 {
		t.Errorf("in-flight during request = %v, want 1", during)
	}
	if after := testutil.ToFloat64(reg.RequestsInFlight); after != 0 {
		t.Errorf("in-flight after request = %v, want 0", after)
	}
}

func TestMetricsEndpointsRouteAndDecode(t *testing.T) {
	paths := make(map[string]bool)
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths[r.URL.Path+"?"+r.URL.RawQuery] = true
		switch r.URL.Path {
		case "/api/metrics/centrality":
			w.Write([]byte(`{"type": "pagerank", "rankings": [{"id": "a", "name": "Alice", "score": 0.04}]}`))
		case "/api/metrics/communities":
			w.Write([]byte(`{"communities": [{"id": 0, "members": ["a"], "size": 1, "density": 1.0}], "modularity": 0.42}`))
		case "/api/metrics/dead-man-switch":
			w.Write([]byte(`{"rankings": [{"id": "a", "name": "Alice", "dms_score": 0.91, "impact_pct": 18}]}`))
		case "/api/metrics/waste":
			w.Write([]byte(`{"people": [{"id": "a", "name": "Alice", "waste_score": 0.33, "broadcast_ratio": 0.5}]}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))

	ctx := context.Background()

	centrality, err := c.Centrality(ctx, "pagerank")
	if err != nil || len(centrality.Rankings) != 1 || centrality.Rankings[0].Score != 0.04 {
		t.Errorf("Centrality = %+v, %v", centrality, err)
	}
	if !paths["/api/metrics/centrality?type=pagerank"] {
		t.Error("centrality type not passed as query param")
	}

	communities, err := c.Communities(ctx)
	if err != nil || communities.Modularity != 0.42 {
		t.Errorf("Communities = %+v, %v", communities, err)
	}

	criticality, err := c.Criticality(ctx)
	if err != nil || len(criticality.Rankings) != 1 || criticality.Rankings[0].DMSScore != 0.91 {
		t.Errorf("Criticality = %+v, %v", criticality, err)
	}

	waste, err := c.Waste(ctx)
	if err != nil || len(waste.People) != 1 || waste.People[0].BroadcastRatio != 0.5 {
		t.Errorf("Waste = %+v, %v", waste, err)
	}
}

func TestNonOKStatusIsErrStatus(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))

	_, err := c.People(context.Background())
	if !errors.Is(err, ErrStatus) {
		t.Fatalf("err = %v, want ErrStatus", err)
	}
}

func TestMalformedBodyIsErrDecode(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"people": [`))
	}))

	_, err := c.People(context.Background())
	if !errors.Is(err, ErrDecode) {
		t.Fatalf("err = %v, want ErrDecode", err)
	}
}

func TestPersonPanelEscapesID(t *testing.T) {
	var gotPath string
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		w.Write([]byte(`{"id": "phillip.allen@enron.com", "name": "Phillip Allen", "alert_tier": "warning"}`))
	}))

	panel, err := c.PersonPanel(context.Background(), "phillip.allen@enron.com")
	if err != nil {
		t.Fatalf("PersonPanel: %v", err)
	}
	if gotPath != "/api/people/phillip.allen@enron.com/panel" {
		t.Errorf("path = %q", gotPath)
	}
	if panel.AlertTier != "warning" {
		t.Errorf("AlertTier = %q", panel.AlertTier)
	}
}

func TestContextCancelAborts(t *testing.T) {
	block := make(chan struct{})
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	t.Cleanup(func() { close(block) })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Graph(ctx)
	if err == nil {
		t.Fatal("expected error from cancelled context")
	}
}
