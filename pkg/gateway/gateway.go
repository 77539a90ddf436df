// Package gateway is the client's only link to the external analytics
// service: a thin typed wrapper over its read-only HTTP endpoints plus the
// streaming chat request. All scoring is computed server-side; nothing in
// this package interprets the numbers it carries.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/orglens/orglens/pkg/logging"
	"github.com/orglens/orglens/pkg/metrics"
)

// Client talks to the analytics service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	streaming  *http.Client
	logger     logging.Logger
	metrics    *metrics.Registry
	sessionID  string
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger.
func WithLogger(l logging.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithMetrics sets the metrics registry.
func WithMetrics(r *metrics.Registry) Option {
	return func(c *Client) { c.metrics = r }
}

// WithHTTPClient replaces the default HTTP client. Tests use this.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc; c.streaming = hc }
}

// NewClient creates a client for the service at baseURL.
//
// requestTimeout bounds ordinary request/response calls; streamTimeout
// bounds the whole life of a chat stream, which can legitimately run for
// minutes while tokens arrive.
func NewClient(baseURL string, requestTimeout, streamTimeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: requestTimeout},
		streaming:  &http.Client{Timeout: streamTimeout},
		logger:     logging.Nop(),
		metrics:    metrics.DefaultRegistry(),
		sessionID:  uuid.New().String(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SessionID returns the id sent with every request for log correlation.
func (c *Client) SessionID() string {
	return c.sessionID
}

// getJSON performs a GET against path and decodes the body into out.
func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	requestID := uuid.New().String()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	req.Header.Set("X-Session-ID", c.sessionID)

	start := time.Now()
	c.metrics.RequestsInFlight.Inc()
	resp, err := c.httpClient.Do(req)
	c.metrics.RequestsInFlight.Dec()
	if err != nil {
		c.metrics.RecordRequest(path, "error", time.Since(start))
		c.logger.Warn("request failed", logging.Endpoint(path), logging.RequestID(requestID), logging.Error(err))
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	c.metrics.RecordRequest(path, strconv.Itoa(resp.StatusCode), time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("GET %s: %w: %d", path, ErrStatus, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("GET %s: %w: %v", path, ErrDecode, err)
	}
	return nil
}

// Graph fetches the full node and edge collections.
func (c *Client) Graph(ctx context.Context) (*GraphPayload, error) {
	var payload GraphPayload
	if err := c.getJSON(ctx, "/api/graph", &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// People fetches the person summary list.
func (c *Client) People(ctx context.Context) (*PeoplePayload, error) {
	var payload PeoplePayload
	if err := c.getJSON(ctx, "/api/people", &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// PersonPanel fetches the expanded record for one person.
func (c *Client) PersonPanel(ctx context.Context, id string) (*PersonPanel, error) {
	var payload PersonPanel
	path := "/api/people/" + url.PathEscape(id) + "/panel"
	if err := c.getJSON(ctx, path, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// Overview fetches the aggregate metrics overview.
func (c *Client) Overview(ctx context.Context) (*OverviewPayload, error) {
	var payload OverviewPayload
	if err := c.getJSON(ctx, "/api/metrics/overview", &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// Centrality fetches the ranking for one centrality type
// (pagerank, betweenness, eigenvector, degree).
func (c *Client) Centrality(ctx context.Context, kind string) (*CentralityPayload, error) {
	var payload CentralityPayload
	path := "/api/metrics/centrality?type=" + url.QueryEscape(kind)
	if err := c.getJSON(ctx, path, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// Communities fetches the community list.
func (c *Client) Communities(ctx context.Context) (*CommunitiesPayload, error) {
	var payload CommunitiesPayload
	if err := c.getJSON(ctx, "/api/metrics/communities", &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// Criticality fetches the single-point-of-failure rankings.
func (c *Client) Criticality(ctx context.Context) (*CriticalityPayload, error) {
	var payload CriticalityPayload
	if err := c.getJSON(ctx, "/api/metrics/dead-man-switch", &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// Waste fetches the communication-waste rankings.
func (c *Client) Waste(ctx context.Context) (*WastePayload, error) {
	var payload WastePayload
	if err := c.getJSON(ctx, "/api/metrics/waste", &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// Risks fetches the risk summaries.
func (c *Client) Risks(ctx context.Context) (*RisksPayload, error) {
	var payload RisksPayload
	if err := c.getJSON(ctx, "/api/risks", &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// Trends fetches the trend deltas.
func (c *Client) Trends(ctx context.Context) (*TrendsPayload, error) {
	var payload TrendsPayload
	if err := c.getJSON(ctx, "/api/trends", &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// HealthReport fetches the generated health report.
func (c *Client) HealthReport(ctx context.Context) (*ReportPayload, error) {
	var payload ReportPayload
	if err := c.getJSON(ctx, "/api/reports/health", &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// ChatStream opens a streaming conversational turn. The caller owns the
// returned stream and must Close it.
func (c *Client) ChatStream(ctx context.Context, message string, history []ChatMessage) (*Stream, error) {
	body, err := json.Marshal(ChatRequest{Message: message, History: history})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("X-Request-ID", uuid.New().String())
	req.Header.Set("X-Session-ID", c.sessionID)

	resp, err := c.streaming.Do(req)
	if err != nil {
		c.metrics.StreamFailuresTotal.Inc()
		return nil, fmt.Errorf("POST /api/chat: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		resp.Body.Close()
		c.metrics.StreamFailuresTotal.Inc()
		return nil, fmt.Errorf("POST /api/chat: %w: %d", ErrStatus, resp.StatusCode)
	}

	return newStream(resp.Body, c.logger, c.metrics), nil
}
