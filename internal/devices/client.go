// Package devices talks to LAN appliances over their small HTTP APIs.
package devices

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
)

// Default per-call timeouts.
const (
	DefaultCommandTimeout = 5 * time.Second
	DefaultStatusTimeout  = 3 * time.Second

	maxBodyBytes = 1 << 16 // 64 KB
)

// ErrUnexpectedStatus is returned when a device answers a status probe with
// something other than 200.
var ErrUnexpectedStatus = errors.New("unexpected device status")

// Timeouts bound every outbound call. Zero values fall back to the defaults.
type Timeouts struct {
	Command time.Duration
	Status  time.Duration
}

// Client is a minimal device REST client. It holds no per-device state.
type Client struct {
	http     *http.Client
	timeouts Timeouts
}

// NewClient constructs a device client. httpClient may be nil.
func NewClient(httpClient *http.Client, t Timeouts) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if t.Command <= 0 {
		t.Command = DefaultCommandTimeout
	}
	if t.Status <= 0 {
		t.Status = DefaultStatusTimeout
	}
	return &Client{http: httpClient, timeouts: t}
}

// Response is what a device answered to a command.
type Response struct {
	StatusCode int
	Target     string
	Body       []byte
}

// SetSwitch drives a smart switch: POST http://<host>/api/state/<STATE>.
func (c *Client) SetSwitch(ctx context.Context, host, state string) (Response, error) {
	target := "http://" + host + "/api/state/" + url.PathEscape(state)
	return c.do(ctx, http.MethodPost, target)
}

// SetClimateQuery sends a query-style climate command:
// POST http://<host>/climate/air_conditioner/set?mode=<mode>[&temp=<temp>].
// temp is omitted when nil.
func (c *Client) SetClimateQuery(ctx context.Context, host, mode string, temp *float64) (Response, error) {
	q := url.Values{}
	q.Set("mode", mode)
	if temp != nil {
		q.Set("temp", strconv.FormatFloat(*temp, 'f', -1, 64))
	}
	target := "http://" + host + "/climate/air_conditioner/set"
	resp, err := c.do(ctx, http.MethodPost, target+"?"+q.Encode())
	resp.Target = target
	return resp, err
}

// SetClimatePath sends a path-style climate command:
// PUT http://<host>/api/state/<status>.
func (c *Client) SetClimatePath(ctx context.Context, host, status string) (Response, error) {
	target := "http://" + host + "/api/state/" + url.PathEscape(status)
	return c.do(ctx, http.MethodPut, target)
}

// TriggerLED hits the legacy ESP8266 wake endpoint: GET http://<ip>/led_on.
func (c *Client) TriggerLED(ctx context.Context, ip string) error {
	resp, err := c.doMethod(ctx, http.MethodGet, "http://"+ip+"/led_on", c.timeouts.Command)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("led trigger: http %d", resp.StatusCode)
	}
	return nil
}

// Status reads GET http://<host>/api/status with the short status timeout.
// Any non-200 answer or undecodable body is an error.
func (c *Client) Status(ctx context.Context, host string) (Reading, error) {
	resp, err := c.doMethod(ctx, http.MethodGet, "http://"+host+"/api/status", c.timeouts.Status)
	if err != nil {
		return Reading{}, err
	}
	if resp.StatusCode != http.StatusOK {
		return Reading{}, fmt.Errorf("%w: http %d", ErrUnexpectedStatus, resp.StatusCode)
	}
	var r Reading
	if err := json.NewDecoder(bytes.NewReader(resp.Body)).Decode(&r); err != nil {
		return Reading{}, fmt.Errorf("decode status: %w", err)
	}
	return r, nil
}

func (c *Client) do(ctx context.Context, method, target string) (Response, error) {
	return c.doMethod(ctx, method, target, c.timeouts.Command)
}

func (c *Client) doMethod(ctx context.Context, method, target string, timeout time.Duration) (Response, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	out := Response{Target: target}
	req, err := http.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		return out, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return out, err
	}
	defer resp.Body.Close()

	out.StatusCode = resp.StatusCode
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return out, fmt.Errorf("read body: %w", err)
	}
	out.Body = body
	return out, nil
}

// ReportedSuccess inspects a device JSON body for an explicit "success"
// field. A missing field or non-JSON body counts as success.
func ReportedSuccess(body []byte) bool {
	var v struct {
		Success *bool `json:"success"`
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return true
	}
	if err := json.Unmarshal(body, &v); err != nil || v.Success == nil {
		return true
	}
	return *v.Success
}

// NormalizeState upper-cases and trims a switch state.
func NormalizeState(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
