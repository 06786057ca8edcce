package service

import (
	"time"

	workerpool "github.com/bardeals/happyhour/internal/adapters/mq/worker"
	"github.com/bardeals/happyhour/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithDataFile sets the venue catalog path.
func WithDataFile(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.dataFile = path
		}
	}
}

// WithReloadInterval enables periodic catalog reloads.
func WithReloadInterval(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.reloadInterval = d
		}
	}
}

// WithQueueSize sets the maximum size of the submission queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithForwarderCount sets the number of forwarding workers.
func WithForwarderCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.forwarderCount = count
		}
	}
}

// WithDedupeSize sets the size of the submission fingerprint cache.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithFormEndpoint sets the form collection endpoint submissions are
// forwarded to.
func WithFormEndpoint(endpoint string) Option {
	return func(s *Service) {
		s.formEndpoint = endpoint
	}
}

// WithForwarder injects a custom forwarder, replacing the default forms
// client. Used in tests.
func WithForwarder(f workerpool.Forwarder) Option {
	return func(s *Service) {
		if f != nil {
			s.forwarder = f
		}
	}
}

// WithGeocoder injects a custom geocoder, replacing the default Nominatim
// client.
func WithGeocoder(g Geocoder) Option {
	return func(s *Service) {
		if g != nil {
			s.geocoder = g
		}
	}
}

// WithGeocodeEndpoint configures the default geocoder.
func WithGeocodeEndpoint(baseURL, email string) Option {
	return func(s *Service) {
		s.geocodeURL = baseURL
		s.geocodeEmail = email
	}
}

// WithMaxResults caps the size of ranked result lists.
func WithMaxResults(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxResults = n
		}
	}
}

// WithDefaults sets the fallback category, area and time filter applied to
// queries that omit them.
func WithDefaults(category, area, timeFilter string) Option {
	return func(s *Service) {
		if category != "" {
			s.defaultCategory = category
		}
		if area != "" {
			s.defaultArea = area
		}
		if timeFilter != "" {
			s.defaultTime = timeFilter
		}
	}
}

// WithTimezone sets the IANA zone deal windows are evaluated in.
func WithTimezone(name string) Option {
	return func(s *Service) {
		if name != "" {
			s.timezone = name
		}
	}
}

// WithClock injects the time source. Used in tests.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}
