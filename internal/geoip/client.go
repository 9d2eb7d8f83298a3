package geoip

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/netip"
	"net/url"
	"time"
)

// HTTPClient implements Resolver by calling an external geolocation HTTP
// service that serves continent and country codes per IP.
type HTTPClient struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
}

var _ Resolver = (*HTTPClient)(nil)

// HTTPClientOption configures the HTTPClient.
type HTTPClientOption func(*HTTPClient)

// WithHTTPClient sets a custom HTTP client (for testing).
func WithHTTPClient(client *http.Client) HTTPClientOption {
	return func(c *HTTPClient) {
		c.httpClient = client
	}
}

// NewHTTPClient creates a new HTTP-based geolocation resolver.
func NewHTTPClient(baseURL string, timeout time.Duration, opts ...HTTPClientOption) *HTTPClient {
	c := &HTTPClient{
		baseURL: baseURL,
		timeout: timeout,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// locationResponse represents the response from the geolocation service.
type locationResponse struct {
	ContinentCode string `json:"continent_code"`
	CountryCode   string `json:"country_code"`
}

// Resolve looks up the location of the given IP address.
func (c *HTTPClient) Resolve(ctx context.Context, ip string) (Location, error) {
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return Location{}, fmt.Errorf("invalid ip address %q: %w", ip, err)
	}

	lookupURL := fmt.Sprintf("%s/v1/location/%s", c.baseURL, url.PathEscape(addr.String()))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, lookupURL, nil)
	if err != nil {
		return Location{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return Location{}, fmt.Errorf("geolocation request timeout: %w", err)
		}
		return Location{}, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Location{}, fmt.Errorf("read response body: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return Location{}, fmt.Errorf("no location known for ip %s", addr)
	default:
		return Location{}, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var loc locationResponse
	if err := json.Unmarshal(body, &loc); err != nil {
		return Location{}, fmt.Errorf("parse response: %w", err)
	}
	if loc.ContinentCode == "" {
		return Location{}, fmt.Errorf("geolocation response missing continent code for ip %s", addr)
	}

	return Location{ContinentCode: loc.ContinentCode, CountryCode: loc.CountryCode}, nil
}
