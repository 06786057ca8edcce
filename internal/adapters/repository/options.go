package repository

import "time"

// Option applies a configuration option to the FileStore.
type Option func(*FileStore)

// WithReloadInterval enables periodic re-reads of the data file at the
// given interval. Zero or negative leaves reloading manual.
func WithReloadInterval(interval time.Duration) Option {
	return func(s *FileStore) {
		if interval > 0 {
			s.reloadInterval = interval
		}
	}
}
