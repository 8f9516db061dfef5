// Package statuscake reads uptime periods from the StatusCake v1 API.
package statuscake

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultBaseURL = "https://api.statuscake.com"
	DefaultLimit   = 20
	defaultTimeout = 10 * time.Second
)

var errNotConfigured = errors.New("statuscake: api key or test id not configured")

// Period is one uptime period as returned by the API, newest first.
// EndedAt is nil while the period is still open.
type Period struct {
	Status    string  `json:"status"`
	CreatedAt string  `json:"created_at"`
	EndedAt   *string `json:"ended_at"`
}

type periodsResponse struct {
	Data []Period `json:"data"`
}

// Client is a read-only StatusCake client.
type Client struct {
	baseURL string
	apiKey  string
	testID  string
	client  *http.Client
	timeout time.Duration
}

// NewClient constructs a client. An empty baseURL selects the public API.
func NewClient(baseURL, apiKey, testID string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		testID:  testID,
		client:  &http.Client{},
		timeout: timeout,
	}
}

// FetchPeriods returns up to limit recent periods, newest first. Callers
// that render a chart treat any error as "no data".
func (c *Client) FetchPeriods(ctx context.Context, limit int) ([]Period, error) {
	if c.apiKey == "" || c.testID == "" {
		return nil, errNotConfigured
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	u := fmt.Sprintf("%s/v1/uptime/%s/periods?limit=%s",
		c.baseURL, url.PathEscape(c.testID), strconv.Itoa(limit))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("statuscake: http %d", resp.StatusCode)
	}
	var out periodsResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("statuscake: decode periods: %w", err)
	}
	return out.Data, nil
}
