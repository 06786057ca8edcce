package api

import (
	"errors"
	"fmt"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest   = errors.New("bad request")
	ErrBackpressure = errors.New("backpressure")
)

// Error-class labels recorded by the metrics middleware. They partition the
// response statuses the handlers emit; errClassBackpressure is the label for
// a full submission queue.
const (
	errClassServer       = "server_error"
	errClassBackpressure = "backpressure"
	errClassNotFound     = "not_found"
	errClassClient       = "client_error"
	errClassUnknown      = "unknown"
)

// NewKind tags a sentinel with the operation that raised it.
func NewKind(op string, kind error) error {
	return fmt.Errorf("%s: %w", op, kind)
}

// WrapKind tags a sentinel and the underlying cause.
func WrapKind(op string, kind, err error) error {
	return fmt.Errorf("%s: %w: %w", op, kind, err)
}

// Wrap tags an error with the operation that raised it.
func Wrap(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
