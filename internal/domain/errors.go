package domain

import (
	"errors"
	"fmt"
)

// ErrInFlight is returned when a submission is attempted while another one
// is still outstanding. At most one request may be in flight.
var ErrInFlight = errors.New("a submission is already in flight")

// ValidationError reports missing or unusable user input. It is raised
// before any network activity and never changes the session phase.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NetworkError wraps a transport-level rejection (DNS failure, connection
// refused, timeout). No result exists when this is returned.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("request to %s failed: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ParseError reports a declared-structured body that failed to parse.
// It is terminal: the body is never silently degraded to raw text.
type ParseError struct {
	ContentType string
	Err         error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("body declared %q but did not parse: %v", e.ContentType, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsNetwork reports whether err is (or wraps) a NetworkError.
func IsNetwork(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

// IsParse reports whether err is (or wraps) a ParseError.
func IsParse(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}
