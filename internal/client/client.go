// README: HTTP client for the Pack-n-Track API, used by the terminal wizard and the smoke runner.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"packntrack/internal/trip"
)

// APIError is a non-2xx answer from the API. Message is the body's "error"
// field when present.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server error (status %d)", e.StatusCode)
	}
	return fmt.Sprintf("server error (status %d): %s", e.StatusCode, e.Message)
}

type Options struct {
	Prefs       []string `json:"prefs"`
	Days        []int    `json:"days"`
	DefaultDays int      `json:"default_days"`
	Palette     []string `json:"palette"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New targets baseURL (e.g. http://localhost:8080). A nil httpClient gets a
// 90s timeout, above the server's default upstream timeout.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 90 * time.Second}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// PlanTrip posts the selection and decodes the returned plan.
func (c *Client) PlanTrip(ctx context.Context, req trip.TripRequest) (*trip.TripPlan, error) {
	raw, err := c.PlanTripRaw(ctx, req)
	if err != nil {
		return nil, err
	}
	plan, err := trip.DecodePlan(raw)
	if err != nil {
		return nil, fmt.Errorf("client: decode plan: %w", err)
	}
	return plan, nil
}

// PlanTripRaw returns the response body exactly as served.
func (c *Client) PlanTripRaw(ctx context.Context, req trip.TripRequest) ([]byte, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("client: marshal request: %w", err)
	}
	return c.do(ctx, http.MethodPost, "/api/plan-trip", body)
}

func (c *Client) Options(ctx context.Context) (*Options, error) {
	raw, err := c.do(ctx, http.MethodGet, "/api/options", nil)
	if err != nil {
		return nil, err
	}
	var opts Options
	if err := json.Unmarshal(raw, &opts); err != nil {
		return nil, fmt.Errorf("client: decode options: %w", err)
	}
	return &opts, nil
}

func (c *Client) do(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	var rdr io.Reader
	if body != nil {
		rdr = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return nil, fmt.Errorf("client: build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("client: do request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("client: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var e struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(data, &e) == nil {
			apiErr.Message = e.Error
		}
		return nil, apiErr
	}
	return data, nil
}
