package search

import (
	"errors"
	"fmt"
)

// Sentinel errors for the search core. Controllers map these onto HTTP
// status codes; everything else is treated as a store failure.
var (
	ErrInvalidRange      = errors.New("invalid range")
	ErrInvalidQuery      = errors.New("invalid query")
	ErrNotFound          = errors.New("not found")
	ErrSearchUnavailable = errors.New("search unavailable")
)

func invalidRange(field string) error {
	return fmt.Errorf("%w: %s: min exceeds max", ErrInvalidRange, field)
}

func invalidQuery(field, reason string) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidQuery, field, reason)
}

func unavailable(err error) error {
	return fmt.Errorf("%w: %v", ErrSearchUnavailable, err)
}
