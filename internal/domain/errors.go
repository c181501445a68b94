package domain

import "errors"

var (
	// ErrNotFound indicates the platform has no record for the requested handle or id.
	ErrNotFound = errors.New("not found")
)
