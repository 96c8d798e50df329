package errors

import "errors"

// Service-level error kinds. Handlers translate these into HTTP responses;
// raw driver errors must never cross the handler boundary.
var (
	ErrNotFound   = errors.New("resource not found")
	ErrForbidden  = errors.New("forbidden")
	ErrValidation = errors.New("validation failed")
	ErrDuplicate  = errors.New("resource already exists")
	ErrUpstream   = errors.New("upstream dependency failed")
)

// Is reports whether err matches target. Re-exported so callers don't need
// to import both this package and the stdlib errors package.
func Is(err, target error) bool {
	return errors.Is(err, target)
}
