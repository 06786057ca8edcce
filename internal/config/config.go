// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(ctx) to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"context"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DataFile points at the venue catalog JSON.
	DataFile string `koanf:"data_file"`

	// ReloadIntervalSec re-reads the catalog this often; 0 disables.
	ReloadIntervalSec int `koanf:"reload_interval_sec"`

	// FormEndpoint receives forwarded submissions. Empty disables
	// forwarding; submissions are still accepted and deduplicated.
	FormEndpoint string `koanf:"form_endpoint"`

	// GeocodeURL overrides the Nominatim search endpoint.
	GeocodeURL string `koanf:"geocode_url"`

	// GeocodeEmail identifies us to the geocoding service.
	GeocodeEmail string `koanf:"geocode_email"`

	// QueueSize bounds the in-memory submission queue.
	QueueSize int `koanf:"queue_size"`

	// ForwarderCount sets the number of submission forwarding workers.
	ForwarderCount int `koanf:"forwarder_count"`

	// DedupeSize sets the size of the submission fingerprint cache.
	DedupeSize int `koanf:"dedupe_size"`

	// MaxResults caps GET /venues?limit.
	MaxResults int `koanf:"max_results"`

	// DefaultCategory is applied when a request names no category.
	DefaultCategory string `koanf:"default_category"`

	// DefaultArea is applied when a request names no area.
	DefaultArea string `koanf:"default_area"`

	// DefaultTime is applied when a request names no time filter.
	DefaultTime string `koanf:"default_time"`

	// Timezone is the IANA zone venue windows are evaluated in.
	Timezone string `koanf:"timezone"`
}

// New creates a Config with defaults. Context is accepted first to satisfy
// the project-wide convention; it is reserved for future use.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:        "info",
		Addr:            ":9080",
		DataFile:        "data/bars.json",
		FormEndpoint:    "",
		GeocodeURL:      "https://nominatim.openstreetmap.org/search",
		QueueSize:       10_000,
		ForwarderCount:  2,
		DedupeSize:      50_000,
		MaxResults:      200,
		DefaultCategory: "featured",
		DefaultArea:     "all",
		DefaultTime:     "now",
		Timezone:        "Europe/Vienna",
	}
}
