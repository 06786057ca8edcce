package repository

import "errors"

// Sentinel kinds for catalog errors.
var (
	ErrNotFound     = errors.New("venue not found")
	ErrEmptyCatalog = errors.New("catalog contains no venues")
)
