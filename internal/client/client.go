// Package client talks to a remote finchat API server.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/theirongolddev/finchat/internal/finance"
	"github.com/theirongolddev/finchat/internal/model"
	"github.com/theirongolddev/finchat/internal/server"
	"github.com/theirongolddev/finchat/internal/store"
)

const (
	requestTimeout = 30 * time.Second
	maxBodySize    = 1 << 20 // 1 MB
	userAgent      = "github.com/theirongolddev/finchat/1.0"
)

var (
	// ErrBadRequest indicates the server rejected the request body.
	ErrBadRequest = errors.New("client: bad request")
	// ErrNotFound indicates the route or resource does not exist.
	ErrNotFound = errors.New("client: not found")
	// ErrServer indicates the server failed while handling the request.
	ErrServer = errors.New("client: server error")
)

// Client calls the finchat HTTP API. It implements finance.Advisor.
type Client struct {
	base *url.URL
	http *http.Client
}

var _ finance.Advisor = (*Client)(nil)

// New creates a client for the server at baseURL, e.g. "http://localhost:8000".
func New(baseURL string) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(strings.TrimSpace(baseURL), "/"))
	if err != nil {
		return nil, fmt.Errorf("client: parsing base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("client: base url %q must be http or https", baseURL)
	}
	return &Client{base: u, http: &http.Client{}}, nil
}

// BaseURL returns the server address the client talks to.
func (c *Client) BaseURL() string { return c.base.String() }

// AnalyzeText calls POST /api/v1/nlu.
func (c *Client) AnalyzeText(ctx context.Context, text string) (model.NLUAnalysis, error) {
	var resp server.NLUResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/nlu", server.NLURequest{Text: text}, &resp); err != nil {
		return model.NLUAnalysis{}, err
	}
	return resp.Analysis, nil
}

// GenerateAdvice calls POST /api/v1/generate and returns the advice text.
func (c *Client) GenerateAdvice(ctx context.Context, question string, persona model.Persona) (string, error) {
	resp, err := c.Generate(ctx, question, string(persona))
	if err != nil {
		return "", err
	}
	return resp.Response, nil
}

// Generate calls POST /api/v1/generate and returns the full response,
// including the NLU analysis and the prompt.
func (c *Client) Generate(ctx context.Context, question, persona string) (server.GenerateResponse, error) {
	var resp server.GenerateResponse
	err := c.do(ctx, http.MethodPost, "/api/v1/generate", server.GenerateRequest{Question: question, Persona: persona}, &resp)
	return resp, err
}

// SummarizeBudget calls POST /api/v1/budget-summary.
func (c *Client) SummarizeBudget(ctx context.Context, data model.BudgetData) (finance.BudgetSummary, error) {
	var resp server.BudgetResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/budget-summary", data, &resp); err != nil {
		return finance.BudgetSummary{}, err
	}
	return resp.Summary.BudgetSummary, nil
}

// GenerateInsights calls POST /api/v1/spending-insights.
func (c *Client) GenerateInsights(ctx context.Context, data model.SpendingData) (finance.InsightReport, error) {
	var resp server.InsightsResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/spending-insights", data, &resp); err != nil {
		return finance.InsightReport{}, err
	}
	return resp.Insights.InsightReport, nil
}

// Health calls GET /api/v1/health.
func (c *Client) Health(ctx context.Context) (server.HealthResponse, error) {
	var resp server.HealthResponse
	err := c.do(ctx, http.MethodGet, "/api/v1/health", nil, &resp)
	return resp, err
}

// History calls GET /api/v1/history.
func (c *Client) History(ctx context.Context, limit int, kind string) ([]store.Entry, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if kind != "" {
		q.Set("kind", kind)
	}
	path := "/api/v1/history"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var resp server.HistoryResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Entries, nil
}

// HistoryEntry calls GET /api/v1/history/:id.
func (c *Client) HistoryEntry(ctx context.Context, id string) (store.Entry, error) {
	var e store.Entry
	err := c.do(ctx, http.MethodGet, "/api/v1/history/"+url.PathEscape(id), nil, &e)
	return e, err
}

// do sends in as JSON (when non-nil) and decodes the response into out.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("client: encoding request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base.String()+path, body)
	if err != nil {
		return fmt.Errorf("client: creating request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	//nolint:gosec // URL is built from the configured base URL
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("client: request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return fmt.Errorf("client: reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return statusError(resp.StatusCode, data)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("client: parsing %s response: %w", path, err)
	}
	return nil
}

func statusError(code int, body []byte) error {
	var e server.ErrorResponse
	msg := http.StatusText(code)
	if json.Unmarshal(body, &e) == nil && e.Error != "" {
		msg = e.Error
	}

	switch {
	case code == http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, msg)
	case code >= 400 && code < 500:
		return fmt.Errorf("%w: %s", ErrBadRequest, msg)
	case code >= 500:
		return fmt.Errorf("%w: %s", ErrServer, msg)
	}
	return fmt.Errorf("client: unexpected status %d: %s", code, msg)
}
