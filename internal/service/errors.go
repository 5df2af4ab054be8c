package service

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is matched by every entity specific not found error.
	ErrNotFound = errors.New("not found")

	ErrActivityNotFound     = fmt.Errorf("activity %w", ErrNotFound)
	ErrBuildingNotFound     = fmt.Errorf("building %w", ErrNotFound)
	ErrOrganizationNotFound = fmt.Errorf("organization %w", ErrNotFound)

	// ErrInvalidReference is returned when a write points at a row that does not exist.
	ErrInvalidReference = errors.New("invalid reference")

	ErrInvalidArgument = errors.New("invalid argument")
)

// missingReference reports a dangling reference. A missing building is also a not found.
func missingReference(what string, id int64, notFound error) error {
	if notFound != nil {
		return fmt.Errorf("%s %d: %w: %w", what, id, ErrInvalidReference, notFound)
	}
	return fmt.Errorf("%s %d: %w", what, id, ErrInvalidReference)
}
