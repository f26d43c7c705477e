package profile

import "errors"

// Sentinel errors for normalization.
// Use errors.Is() to check for these errors in calling code.
var (
	// ErrMissingField indicates a required field was not supplied.
	// The wrapped message names every missing field.
	ErrMissingField = errors.New("missing field")

	// ErrConflictingConstraint indicates fields that are individually valid
	// but cannot hold together, such as private data that is build-time static.
	ErrConflictingConstraint = errors.New("conflicting constraint")

	// ErrUnknownValue indicates a field holds a value outside its allowed set.
	ErrUnknownValue = errors.New("unknown value")
)
