package index

import "errors"

var (
	// ErrNotFound is returned when a movie or actor has no recorded edges.
	ErrNotFound = errors.New("not found")

	// ErrInsufficientData is returned when a merge names no actors.
	ErrInsufficientData = errors.New("insufficient data: no actors supplied")

	// ErrEmptyName is returned when a merge names no movie.
	ErrEmptyName = errors.New("empty name")

	// ErrInvalidName is returned when a merged name contains the field
	// delimiter or a line break and so could not be saved and read back.
	ErrInvalidName = errors.New("invalid name")
)
