package query

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownMovie is returned when a query names a movie with no edges.
	ErrUnknownMovie = errors.New("movie not in database")

	// ErrUnknownActor is returned when a query names an actor with no edges.
	ErrUnknownActor = errors.New("actor not in database")

	// ErrMalformedQuery is matched by *MalformedQueryError.
	ErrMalformedQuery = errors.New("malformed query")

	// ErrInvalidOperator is returned for an operator symbol other than &, | or ^.
	ErrInvalidOperator = errors.New("invalid operator")
)

// MalformedQueryError reports a movie query with the wrong number of fields.
type MalformedQueryError struct {
	Fields int
}

func (e *MalformedQueryError) Error() string {
	return fmt.Sprintf("malformed query: expected 3 fields, got %d", e.Fields)
}

// Is makes errors.Is(err, ErrMalformedQuery) hold.
func (e *MalformedQueryError) Is(target error) bool {
	return target == ErrMalformedQuery
}
