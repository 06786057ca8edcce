package geocode

import (
	"time"

	"github.com/bardeals/happyhour/pkg/logger"
)

// Option applies a configuration option to the geocoding client.
type Option func(*Client)

// WithBaseURL overrides the Nominatim endpoint.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = u
		}
	}
}

// WithEmail sets the contact email sent with each query.
func WithEmail(email string) Option {
	return func(c *Client) {
		c.email = email
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.HTTPClient.Timeout = d
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(l logger.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}
