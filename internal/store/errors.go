package store

import "errors"

// Common store errors for use with errors.Is()
var (
	ErrInvalidRow = errors.New("invalid row")
)
