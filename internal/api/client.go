// Package api is the only path to the Quarterdeck server. Screens talk
// to the Client interface; HTTPClient implements it over the server's
// REST and WebSocket endpoints, DemoClient implements it in memory for
// offline use and tests. The client carries no business logic: it
// shapes requests, decodes responses and reports errors.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/quarterdeckhq/quarterdeck/internal/logging"
)

const (
	apiPrefix      = "/api/v1"
	requestTimeout = 15 * time.Second
)

// Client is the server surface the UI consumes.
type Client interface {
	// Cluster
	ClusterHealth(ctx context.Context) (*ClusterHealth, error)
	Nodes(ctx context.Context) ([]Node, error)
	Pods(ctx context.Context, namespace string) ([]Pod, error)
	Namespaces(ctx context.Context) ([]string, error)

	// Helm releases
	Releases(ctx context.Context, namespace string) ([]Release, error)
	ReleaseHistory(ctx context.Context, namespace, name string) ([]ReleaseRevision, error)
	ReleaseValues(ctx context.Context, namespace, name string) (map[string]any, error)
	InstallRelease(ctx context.Context, req InstallRequest) (*Release, error)
	UpgradeRelease(ctx context.Context, namespace, name string, req UpgradeRequest) (*Release, error)
	RollbackRelease(ctx context.Context, namespace, name string, toRevision int) (*Release, error)
	UninstallRelease(ctx context.Context, namespace, name string) error
	DryRun(ctx context.Context, req DryRunRequest) (*DryRunResult, error)

	// Optimization
	OptimizationDashboard(ctx context.Context) (*OptimizationDashboard, error)
	ApplyRecommendation(ctx context.Context, id string) (*Recommendation, error)
	DismissRecommendation(ctx context.Context, id string) (*Recommendation, error)

	// Timeline
	Timeline(ctx context.Context, opts TimelineOptions) ([]TimelineEvent, error)

	// Incidents
	Incidents(ctx context.Context, status string) ([]Incident, error)
	AcknowledgeIncident(ctx context.Context, id string) (*Incident, error)
	ResolveIncident(ctx context.Context, id string) (*Incident, error)

	// Live pod logs
	StreamLogs(ctx context.Context, target LogTarget) (*LogStream, error)

	// Client-side call statistics and identity (for header/system screen)
	Stats() []ServiceStats
	Server() string
}

// HTTPClient talks to a Quarterdeck server over HTTP and WebSocket.
type HTTPClient struct {
	baseURL string
	token   string
	http    *http.Client
	dialer  *websocket.Dialer
	stats   *statsRecorder
}

var _ Client = (*HTTPClient)(nil)

// New creates a client for the server at baseURL. An empty token means
// unauthenticated requests.
func New(baseURL, token string) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: requestTimeout},
		dialer: &websocket.Dialer{
			HandshakeTimeout: 10 * time.Second,
		},
		stats: newStatsRecorder(),
	}
}

// newRequestID tags each request so server logs can be correlated with
// client stats.
func newRequestID() string {
	return uuid.NewString()
}

// Server returns the host the client is configured against, for display.
func (c *HTTPClient) Server() string {
	u, err := url.Parse(c.baseURL)
	if err != nil || u.Host == "" {
		return c.baseURL
	}
	return u.Host
}

// Stats returns a snapshot of per-service call statistics.
func (c *HTTPClient) Stats() []ServiceStats {
	return c.stats.snapshot()
}

func (c *HTTPClient) get(ctx context.Context, service, path string, query url.Values, out any) error {
	return c.do(ctx, service, http.MethodGet, path, query, nil, out)
}

func (c *HTTPClient) post(ctx context.Context, service, path string, in, out any) error {
	return c.do(ctx, service, http.MethodPost, path, nil, in, out)
}

func (c *HTTPClient) put(ctx context.Context, service, path string, in, out any) error {
	return c.do(ctx, service, http.MethodPut, path, nil, in, out)
}

func (c *HTTPClient) delete(ctx context.Context, service, path string) error {
	return c.do(ctx, service, http.MethodDelete, path, nil, nil, nil)
}

// do executes one request and decodes the response into out (when out
// is non-nil). Non-2xx responses become StatusError. Every call is
// recorded in the stats, including failures.
func (c *HTTPClient) do(ctx context.Context, service, method, path string, query url.Values, in, out any) (err error) {
	start := time.Now()
	defer func() {
		c.stats.record(service, time.Since(start), err)
	}()

	u := c.baseURL + apiPrefix + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var body *bytes.Reader
	if in != nil {
		data, merr := json.Marshal(in)
		if merr != nil {
			return fmt.Errorf("encode %s %s request: %w", method, path, merr)
		}
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return fmt.Errorf("build %s %s request: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", newRequestID())
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		logging.Debug("Request failed", "method", method, "path", path, "error", err)
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		err = decodeError(resp)
		logging.Debug("Request rejected", "method", method, "path", path,
			"status", resp.StatusCode, "error", err)
		return err
	}

	if out != nil {
		if derr := json.NewDecoder(resp.Body).Decode(out); derr != nil {
			return fmt.Errorf("decode %s %s response: %w", method, path, derr)
		}
	}
	return nil
}
