// Package astroapi is the client side of the provider's /astro endpoint.
package astroapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"astrocards/internal/domain"
	"astrocards/pkg/log"
)

// maxBodyBytes caps how much of a provider response is read.
const maxBodyBytes = 1 << 20

// Client fetches astro records from a provider base endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient builds a client for the given provider base URL. A nil
// httpClient means http.DefaultClient; deadlines come from the caller's context.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpClient: httpClient,
	}
}

// Endpoint returns the request URL for location. The location is not
// validated, only percent-encoded.
func (c *Client) Endpoint(location string) string {
	return c.baseURL + "/astro?location=" + url.QueryEscape(location)
}

// FetchAstro performs one GET {base}/astro?location=... round trip.
// Transport failures and non-2xx statuses wrap domain.ErrNetwork; bodies that
// are not a complete record wrap domain.ErrDecode.
func (c *Client) FetchAstro(ctx context.Context, location string) (*domain.AstroRecord, error) {
	endpoint := c.Endpoint(location)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", domain.ErrNetwork, err)
	}
	req.Header.Set("Accept", "application/json")
	if id := log.RequestIDFromContext(ctx); id != "" {
		req.Header.Set("X-Request-ID", id)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrNetwork, err)
	}
	defer resp.Body.Close()

	log.GlobalDebugCtx(ctx, "astro provider responded",
		"location", location,
		"status", resp.StatusCode,
		"latency_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, fmt.Errorf("%w: status=%d body=%s", domain.ErrNetwork, resp.StatusCode, strings.TrimSpace(string(payload)))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", domain.ErrNetwork, err)
	}

	return DecodeRecord(body)
}
