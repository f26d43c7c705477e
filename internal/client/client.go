// Package client provides an HTTP client for the rendercheck server.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/raphaelgruber/rendercheck/internal/classifier"
	"github.com/raphaelgruber/rendercheck/internal/models"
	"github.com/raphaelgruber/rendercheck/internal/validator"
)

// Client talks to a rendercheck-server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server error: %d %s - %s", e.StatusCode, http.StatusText(e.StatusCode), e.Message)
}

// Rules is the response of the rules endpoint.
type Rules struct {
	Classification []classifier.RuleInfo `json:"classification"`
	Validation     []validator.RuleInfo  `json:"validation"`
}

// New creates a new client.
// If baseURL is empty, uses RENDERCHECK_SERVER_URL env var or defaults to localhost:8585.
// Timeout can be configured via RENDERCHECK_CLIENT_TIMEOUT env var (default 30s).
func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = os.Getenv("RENDERCHECK_SERVER_URL")
	}
	if baseURL == "" {
		baseURL = "http://localhost:8585"
	}

	timeout := 30 * time.Second
	if t := os.Getenv("RENDERCHECK_CLIENT_TIMEOUT"); t != "" {
		if d, err := time.ParseDuration(t); err == nil {
			timeout = d
		}
	}

	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Recommend asks the server for a full recommendation report.
func (c *Client) Recommend(ctx context.Context, m models.Manifest) (*models.RecommendationReport, error) {
	var report models.RecommendationReport
	if err := c.do(ctx, http.MethodPost, "/v1/recommend", m, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// Validate asks the server to validate the manifest's config. An empty
// strategy leaves the choice to the manifest.
func (c *Client) Validate(ctx context.Context, m models.Manifest, strategy models.Strategy) (*models.RecommendationReport, error) {
	path := "/v1/validate"
	if strategy != "" {
		path += "?strategy=" + url.QueryEscape(string(strategy))
	}

	var report models.RecommendationReport
	if err := c.do(ctx, http.MethodPost, path, m, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// Rules fetches the server's rule tables.
func (c *Client) Rules(ctx context.Context) (*Rules, error) {
	var rules Rules
	if err := c.do(ctx, http.MethodGet, "/v1/rules", nil, &rules); err != nil {
		return nil, err
	}
	return &rules, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, result any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errBody struct {
			Error string `json:"error"`
		}
		msg := strings.TrimSpace(string(data))
		if json.Unmarshal(data, &errBody) == nil && errBody.Error != "" {
			msg = errBody.Error
		}
		return &APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	if err := json.Unmarshal(data, result); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}
