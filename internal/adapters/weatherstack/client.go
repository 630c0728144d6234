// Package weatherstack fetches a location's astro data from the weatherstack
// forecast API.
package weatherstack

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"astrocards/internal/domain"
	"astrocards/pkg/log"
)

// CodeRequestFailed is weatherstack's error code for a query it cannot
// resolve to a location.
const CodeRequestFailed = 615

const localTimeLayout = "2006-01-02 15:04"

// Client calls the weatherstack forecast endpoint.
type Client struct {
	baseURL    string
	accessKey  string
	httpClient *http.Client
}

// NewClient creates a weatherstack client. A nil httpClient uses a client
// with a 10s timeout.
func NewClient(baseURL, accessKey string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		accessKey:  accessKey,
		httpClient: httpClient,
	}
}

// APIError is weatherstack's error envelope.
type APIError struct {
	Code int    `json:"code"`
	Type string `json:"type"`
	Info string `json:"info"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("weatherstack error: code=%d, type=%s, info=%s", e.Code, e.Type, e.Info)
}

type errorResponse struct {
	Success *bool     `json:"success"`
	Error   *APIError `json:"error"`
}

type forecastResponse struct {
	Location struct {
		Name       string `json:"name"`
		Country    string `json:"country"`
		Region     string `json:"region"`
		LocalTime  string `json:"localtime"`
		TimeZoneID string `json:"timezone_id"`
	} `json:"location"`
	Forecast map[string]struct {
		Astro domain.AstroDetails `json:"astro"`
	} `json:"forecast"`
}

// Forecast returns today's astro record for location, valid until the next
// local midnight there.
func (c *Client) Forecast(ctx context.Context, location string) (*domain.CachedAstro, error) {
	query := url.Values{}
	query.Set("access_key", c.accessKey)
	query.Set("query", location)
	endpoint := c.baseURL + "/forecast?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", domain.ErrUpstream, err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstream, redact(err, c.accessKey))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", domain.ErrUpstream, err)
	}

	log.GlobalDebugCtx(ctx, "weatherstack response",
		"location", location,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds())

	if apiErr := parseError(resp.StatusCode, body); apiErr != nil {
		if apiErr.Code == CodeRequestFailed {
			return nil, fmt.Errorf("%w: %s", domain.ErrLocationNotFound, apiErr.Info)
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstream, apiErr)
	}

	var forecast forecastResponse
	if err := json.Unmarshal(body, &forecast); err != nil {
		return nil, fmt.Errorf("%w: decode forecast: %v", domain.ErrUpstream, err)
	}
	if len(forecast.Forecast) == 0 {
		return nil, fmt.Errorf("%w: forecast has no days", domain.ErrUpstream)
	}

	expiresAt, err := ExpiresAt(forecast.Location.LocalTime, forecast.Location.TimeZoneID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}

	// Only the earliest day is used.
	dates := make([]string, 0, len(forecast.Forecast))
	for date := range forecast.Forecast {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	day := forecast.Forecast[dates[0]]

	return &domain.CachedAstro{
		Record: domain.AstroRecord{
			Name:    forecast.Location.Name,
			Region:  forecast.Location.Region,
			Country: forecast.Location.Country,
			Date:    dates[0],
			Astro:   day.Astro,
		},
		ExpiresAt: expiresAt,
	}, nil
}

// parseError returns the API error carried by body, or nil for a successful
// response. Non-200 statuses without a readable envelope still fail.
func parseError(status int, body []byte) *APIError {
	var envelope errorResponse
	decodeErr := json.Unmarshal(body, &envelope)

	if status == http.StatusOK {
		if decodeErr == nil && envelope.Success != nil && !*envelope.Success {
			if envelope.Error != nil {
				return envelope.Error
			}
			return &APIError{Info: "success=false"}
		}
		return nil
	}

	if decodeErr == nil && envelope.Error != nil {
		return envelope.Error
	}
	return &APIError{Code: status, Type: "http_status", Info: http.StatusText(status)}
}

// ExpiresAt returns the midnight following localTime ("2006-01-02 15:04") in
// the zone timeZoneID. An unknown zone falls back to UTC.
func ExpiresAt(localTime, timeZoneID string) (time.Time, error) {
	loc, err := time.LoadLocation(timeZoneID)
	if err != nil || timeZoneID == "" {
		loc = time.UTC
	}

	parsed, err := time.ParseInLocation(localTimeLayout, localTime, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse localtime %q: %w", localTime, err)
	}

	next := parsed.AddDate(0, 0, 1)
	return time.Date(next.Year(), next.Month(), next.Day(), 0, 0, 0, 0, loc), nil
}

// redact strips the access key from transport errors, which echo the URL.
func redact(err error, key string) error {
	if key == "" {
		return err
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return errors.New(strings.ReplaceAll(urlErr.Error(), url.QueryEscape(key), "REDACTED"))
	}
	return err
}
