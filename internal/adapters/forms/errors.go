package forms

import "errors"

// Sentinel kinds for forwarding errors.
var (
	ErrNoEndpoint      = errors.New("form endpoint not configured")
	ErrBackendRejected = errors.New("form backend rejected submission")
)
