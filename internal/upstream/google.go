// Package upstream contains clients for the third-party APIs this service
// proxies. The Google client wraps the Geocoding and Solar APIs as simple
// pass-throughs: the upstream JSON payload is returned verbatim, no business
// logic is applied here.
package upstream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	defaultGeocodeURL = "https://maps.googleapis.com/maps/api/geocode/json"
	defaultSolarURL   = "https://solar.googleapis.com/v1/buildingInsights:findClosest"
)

// ErrMissingAPIKey is returned when the client was constructed without a
// Google API key. Handlers map it to a configuration error rather than
// letting the process crash at startup.
var ErrMissingAPIKey = errors.New("google api key is not configured")

// UpstreamError reports a non-success response from a Google API.
type UpstreamError struct {
	API    string
	Status int
}

// Error implements the error interface.
func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s api returned status %d", e.API, e.Status)
}

// GoogleClient calls the Google Geocoding and Solar APIs.
type GoogleClient struct {
	APIKey     string
	GeocodeURL string
	SolarURL   string
	HTTPClient *http.Client
}

// NewGoogleClient constructs a client with the production endpoints and a
// bounded-timeout HTTP client. Options may override endpoints (tests point
// them at a local server).
func NewGoogleClient(apiKey string, timeout time.Duration, opts ...func(*GoogleClient)) *GoogleClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	c := &GoogleClient{
		APIKey:     apiKey,
		GeocodeURL: defaultGeocodeURL,
		SolarURL:   defaultSolarURL,
		HTTPClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithGeocodeURL overrides the Geocoding API endpoint.
func WithGeocodeURL(u string) func(*GoogleClient) {
	return func(c *GoogleClient) {
		if strings.TrimSpace(u) != "" {
			c.GeocodeURL = u
		}
	}
}

// WithSolarURL overrides the Solar API endpoint.
func WithSolarURL(u string) func(*GoogleClient) {
	return func(c *GoogleClient) {
		if strings.TrimSpace(u) != "" {
			c.SolarURL = u
		}
	}
}

// Geocode resolves an address through the Google Geocoding API and returns
// the raw upstream JSON payload.
func (c *GoogleClient) Geocode(ctx context.Context, address string) ([]byte, error) {
	params := url.Values{}
	params.Set("address", address)
	return c.get(ctx, "geocoding", c.GeocodeURL, params)
}

// SolarAnalysis fetches building insights for a coordinate pair through the
// Google Solar API and returns the raw upstream JSON payload.
func (c *GoogleClient) SolarAnalysis(ctx context.Context, lat, lng float64) ([]byte, error) {
	params := url.Values{}
	params.Set("location.latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("location.longitude", strconv.FormatFloat(lng, 'f', -1, 64))
	return c.get(ctx, "solar", c.SolarURL, params)
}

// get performs one authenticated GET and reads the full body. Non-200
// statuses surface as *UpstreamError; the body is discarded in that case
// because Google error payloads may leak the key in echo'd URLs.
func (c *GoogleClient) get(ctx context.Context, api, baseURL string, params url.Values) ([]byte, error) {
	if strings.TrimSpace(c.APIKey) == "" {
		return nil, ErrMissingAPIKey
	}
	params.Set("key", c.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &UpstreamError{API: api, Status: resp.StatusCode}
	}
	return io.ReadAll(resp.Body)
}
