// Package apperror defines the error taxonomy shared by the lifecycle
// manager and the HTTP layer.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrMissingField indicates a required input was empty or absent.
	ErrMissingField = errors.New("missing required field")
	// ErrInvalidDateFormat indicates a date string did not parse as a real
	// calendar date in YYYY-MM-DD form.
	ErrInvalidDateFormat = errors.New("date must be a valid calendar date in YYYY-MM-DD format")
	// ErrInvalidDateRange indicates the end date falls before the start date.
	ErrInvalidDateRange = errors.New("end date cannot be before start date")
	// ErrInvalidArgument indicates a caller contract violation, such as a
	// progress value outside [0,100].
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNotFound indicates the referenced record no longer exists.
	ErrNotFound = errors.New("not found")
	// ErrUnavailable indicates the backing store is unreachable or erroring.
	// Distinct from an empty result, which is a successful outcome.
	ErrUnavailable = errors.New("service unavailable")
)

// MissingField wraps ErrMissingField with the name of the offending field.
func MissingField(field string) error {
	return fmt.Errorf("%w: %s", ErrMissingField, field)
}

// InvalidArgument wraps ErrInvalidArgument with a reason.
func InvalidArgument(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, reason)
}

// HTTPStatus maps a taxonomy error to its HTTP status code. Validation
// failures are user-correctable 400s; anything unrecognized is treated as
// the store being unavailable.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrMissingField),
		errors.Is(err, ErrInvalidDateFormat),
		errors.Is(err, ErrInvalidDateRange),
		errors.Is(err, ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusServiceUnavailable
	}
}
