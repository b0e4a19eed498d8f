package weather

import "errors"

var (
	// ErrNotFound is returned when geocoding yields no results for a query.
	ErrNotFound = errors.New("location not found")

	// ErrMalformed is returned when an upstream response has an unexpected shape.
	ErrMalformed = errors.New("malformed upstream response")

	// ErrUnavailable is returned when a location cannot be determined at all,
	// e.g. both the IP lookup and its geocoding fallback failed.
	ErrUnavailable = errors.New("location unavailable")
)

// FlowError wraps a fetch-flow failure with the single user-facing message
// for that flow. The underlying cause stays reachable through Unwrap.
type FlowError struct {
	Message string
	Err     error
}

func (e *FlowError) Error() string {
	return e.Message + ": " + e.Err.Error()
}

func (e *FlowError) Unwrap() error {
	return e.Err
}
