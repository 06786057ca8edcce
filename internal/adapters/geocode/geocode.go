// Package geocode resolves free-text place queries via the Nominatim
// search API.
package geocode

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/tidwall/gjson"

	"github.com/bardeals/happyhour/pkg/logger"
	"github.com/bardeals/happyhour/pkg/metrics"
)

const (
	defaultBaseURL  = "https://nominatim.openstreetmap.org/search"
	defaultTimeout  = 10 * time.Second
	defaultRetryMax = 2
)

// Result is a single geocoding hit.
type Result struct {
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	DisplayName string  `json:"display_name"`
}

// Client queries Nominatim. Nominatim's usage policy wants an identifying
// User-Agent, which callers provide through the contact email.
type Client struct {
	baseURL string
	email   string
	http    *retryablehttp.Client
	logger  logger.Logger
}

// NewClient creates a geocoding client.
func NewClient(opts ...Option) *Client {
	rc := retryablehttp.NewClient()
	rc.Logger = log.New(io.Discard, "", 0)
	rc.RetryMax = defaultRetryMax
	rc.HTTPClient.Timeout = defaultTimeout

	c := &Client{
		baseURL: defaultBaseURL,
		http:    rc,
		logger:  logger.Get().Named("geocode"),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Lookup resolves a query to coordinates. A query with no hits returns
// (nil, nil).
func (c *Client) Lookup(ctx context.Context, query string) (*Result, error) {
	start := time.Now()
	metrics.RecordGeocodeRequest()
	defer func() {
		metrics.RecordGeocodeLatency(float64(time.Since(start).Milliseconds()))
	}()

	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse geocode base url: %w", err)
	}
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("limit", "1")
	params.Set("addressdetails", "1")
	if c.email != "" {
		params.Set("email", c.email)
	}
	u.RawQuery = params.Encode()

	req, err := retryablehttp.NewRequestWithContext(ctx, "GET", u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build geocode request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.email != "" {
		req.Header.Set("User-Agent", "happyhour-directory ("+c.email+")")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		metrics.RecordGeocodeError()
		return nil, fmt.Errorf("geocode query: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.RecordGeocodeError()
		return nil, fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.RecordGeocodeError()
		return nil, fmt.Errorf("read geocode response: %w", err)
	}

	hits := gjson.ParseBytes(body)
	if !hits.IsArray() || len(hits.Array()) == 0 {
		c.logger.Debug(ctx, "geocode query returned no hits", logger.String("query", query))
		return nil, nil
	}

	first := hits.Array()[0]
	lat, latErr := strconv.ParseFloat(first.Get("lat").String(), 64)
	lng, lngErr := strconv.ParseFloat(first.Get("lon").String(), 64)
	if latErr != nil || lngErr != nil {
		metrics.RecordGeocodeError()
		return nil, ErrBadCoordinates
	}

	return &Result{
		Lat:         lat,
		Lng:         lng,
		DisplayName: first.Get("display_name").String(),
	}, nil
}
