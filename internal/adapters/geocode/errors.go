package geocode

import "errors"

// Sentinel kinds for geocoding errors.
var (
	ErrUpstream       = errors.New("geocode upstream error")
	ErrBadCoordinates = errors.New("geocode response carried unparsable coordinates")
)
