package repository

import "errors"

// Errors returned by every store. Services translate them into their own
// domain errors.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict: record already exists")
	ErrInvalidInput = errors.New("invalid input")
)
