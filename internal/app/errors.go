package service

import "errors"

// Sentinel kinds for service errors.
var (
	ErrNotStarted        = errors.New("service not started")
	ErrInvalidTimeFilter = errors.New("time filter must be one of now, later, tomorrow")
	ErrNoMatch           = errors.New("no venue matches the query")
	ErrQueueFull         = errors.New("submission queue is full")
)
