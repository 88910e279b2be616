package schoolsapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/url"
	"strconv"

	"github.com/rs/zerolog/log"
)

// DefaultBaseURL is the public school registry API
const DefaultBaseURL = "https://schooldb.skillline.ru/api"

// Client is a typed client for the school registry API. It keeps no state
// between calls: no retries, no caching.
type Client struct {
	http *HTTPClient
}

// New creates a registry client on top of an HTTPClient
func New(httpClient *HTTPClient) *Client {
	return &Client{http: httpClient}
}

// BaseURL returns the registry root the client talks to
func (c *Client) BaseURL() string {
	return c.http.BaseURL()
}

// FetchSchools returns one page of schools
func (c *Client) FetchSchools(ctx context.Context, q SchoolsQuery) (*SchoolsPage, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(q.Page))
	params.Set("count", strconv.Itoa(q.Count))
	if q.RegionID != 0 {
		params.Set("region_id", strconv.Itoa(q.RegionID))
	}
	if q.Status != "" && q.Status != StatusAll {
		params.Set("status", q.Status)
	}

	page := &SchoolsPage{}
	if err := c.request(ctx, "/schools", params, page); err != nil {
		return nil, err
	}
	return page, nil
}

// FetchRegions returns all regions
func (c *Client) FetchRegions(ctx context.Context) ([]Region, error) {
	var regions []Region
	if err := c.request(ctx, "/regions", nil, &regions); err != nil {
		return nil, err
	}
	return regions, nil
}

// FetchFederalDistricts returns all federal districts
func (c *Client) FetchFederalDistricts(ctx context.Context) ([]FederalDistrict, error) {
	var districts []FederalDistrict
	if err := c.request(ctx, "/federalDistricts", nil, &districts); err != nil {
		return nil, err
	}
	return districts, nil
}

// request performs the GET, validates the envelope and decodes its data
// part into out. A null or missing data part leaves out untouched.
func (c *Client) request(ctx context.Context, endpoint string, params url.Values, out any) error {
	resp, err := c.http.Get(ctx, endpoint, params)
	if err != nil {
		return err
	}

	if !resp.IsSuccess() {
		log.Error().
			Str("url", resp.URL).
			Int("status_code", resp.StatusCode).
			Msg("registry returned non-success status")
		return &NetworkError{Code: ErrHTTPStatus, StatusCode: resp.StatusCode, URL: resp.URL}
	}

	var env Envelope
	if err := resp.UnmarshalJSON(&env); err != nil {
		return malformed(resp, err)
	}

	if !env.Status {
		msg := env.Message
		if msg == "" {
			msg = DefaultAPIErrorMessage
		}
		log.Warn().
			Str("url", resp.URL).
			Str("message", msg).
			Msg("registry reported failure")
		return &APIError{Message: msg}
	}

	if len(env.Data) == 0 || bytes.Equal(env.Data, []byte("null")) {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return malformed(resp, err)
	}
	return nil
}

// maxLoggedBody caps how much of an undecodable body reaches the log
const maxLoggedBody = 512

func malformed(resp *HTTPResponse, err error) error {
	body := resp.String()
	if len(body) > maxLoggedBody {
		body = body[:maxLoggedBody]
	}
	log.Debug().
		Str("url", resp.URL).
		Str("content_type", resp.Headers.Get("Content-Type")).
		Str("body", body).
		Err(err).
		Msg("registry body is not a valid envelope")
	return &NetworkError{Code: ErrMalformedBody, StatusCode: resp.StatusCode, URL: resp.URL, Err: err}
}
