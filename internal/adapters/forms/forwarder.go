// Package forms delivers accepted submissions to the external form
// collection endpoint.
package forms

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/bardeals/happyhour/internal/domain/model"
	"github.com/bardeals/happyhour/pkg/logger"
)

const (
	defaultRetryMax = 3
	defaultTimeout  = 10 * time.Second
	sourceTag       = "happyhour_api"
)

// Client posts submissions to the form endpoint as url-encoded form data,
// the payload shape the collection backend expects.
type Client struct {
	endpoint string
	http     *retryablehttp.Client
	logger   logger.Logger
}

// NewClient creates a forwarding client for the given endpoint.
func NewClient(endpoint string, opts ...Option) *Client {
	rc := retryablehttp.NewClient()
	rc.Logger = log.New(io.Discard, "", 0)
	rc.RetryMax = defaultRetryMax
	rc.HTTPClient.Timeout = defaultTimeout

	c := &Client{
		endpoint: endpoint,
		http:     rc,
		logger:   logger.Get().Named("forms"),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Forward posts a submission to the configured endpoint. A non-2xx reply
// after retries is an error so the caller can release the fingerprint.
func (c *Client) Forward(ctx context.Context, s model.Submission) error {
	if c.endpoint == "" {
		return ErrNoEndpoint
	}

	payload := url.Values{}
	payload.Set("submission_id", s.ID)
	payload.Set("kind", s.Kind)
	payload.Set("bar_name", s.BarName)
	payload.Set("address", s.Address)
	payload.Set("details", s.Details)
	payload.Set("note", s.Note)
	payload.Set("contact", s.Contact)
	payload.Set("timestamp", s.Timestamp.UTC().Format(time.RFC3339))
	payload.Set("source", sourceTag)

	req, err := retryablehttp.NewRequestWithContext(ctx, "POST", c.endpoint, strings.NewReader(payload.Encode()))
	if err != nil {
		return fmt.Errorf("build form request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded;charset=UTF-8")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("post submission %s: %w", s.ID, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body) //nolint:errcheck // drain for connection reuse

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: status %d", ErrBackendRejected, resp.StatusCode)
	}

	c.logger.Debug(ctx, "submission forwarded",
		logger.String("submissionID", s.ID),
		logger.String("kind", s.Kind),
	)
	return nil
}
