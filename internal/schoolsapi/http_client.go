package schoolsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"
)

// HTTPClient provides the GET plumbing shared by all registry endpoints
type HTTPClient struct {
	client    *http.Client
	baseURL   string
	userAgent string
}

// NewHTTPClient creates a client. timeoutSec <= 0 leaves requests bounded
// only by the caller's context.
func NewHTTPClient(baseURL, userAgent string, timeoutSec int) *HTTPClient {
	c := &http.Client{}
	if timeoutSec > 0 {
		c.Timeout = time.Duration(timeoutSec) * time.Second
	}
	return &HTTPClient{
		client:    c,
		baseURL:   baseURL,
		userAgent: userAgent,
	}
}

// BaseURL returns the URL every endpoint is appended to
func (c *HTTPClient) BaseURL() string {
	return c.baseURL
}

// Get makes a GET request to endpoint with the given query parameters.
// A transport failure is returned as *NetworkError; any HTTP status is
// returned as a response for the caller to judge.
func (c *HTTPClient) Get(ctx context.Context, endpoint string, query url.Values) (*HTTPResponse, error) {
	target := c.baseURL + endpoint
	if encoded := query.Encode(); encoded != "" {
		target += "?" + encoded
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	log.Debug().
		Str("method", http.MethodGet).
		Str("url", target).
		Msg("making HTTP request")

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		log.Error().
			Str("url", target).
			Err(err).
			Msg("HTTP request failed")
		return nil, &NetworkError{Code: ErrTransport, URL: target, Err: err}
	}

	return c.handleResponse(resp, target, time.Since(start))
}

func (c *HTTPClient) handleResponse(resp *http.Response, target string, took time.Duration) (*HTTPResponse, error) {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Code: ErrTransport, StatusCode: resp.StatusCode, URL: target, Err: err}
	}

	log.Debug().
		Str("url", target).
		Int("status_code", resp.StatusCode).
		Int("body_length", len(body)).
		Dur("took", took).
		Msg("received HTTP response")

	return &HTTPResponse{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       body,
		URL:        target,
	}, nil
}

// HTTPResponse represents an HTTP response
type HTTPResponse struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	URL        string
}

// IsSuccess checks if the response indicates success (2xx status code)
func (r *HTTPResponse) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// UnmarshalJSON unmarshals the response body into the provided value
func (r *HTTPResponse) UnmarshalJSON(v any) error {
	return json.Unmarshal(r.Body, v)
}

// String returns the response body as a string
func (r *HTTPResponse) String() string {
	return string(r.Body)
}
