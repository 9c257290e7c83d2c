package proxy

import (
	"github.com/pkg/errors"
)

var (
	// ErrTransport means the backend could not be reached or the exchange was
	// interrupted.
	ErrTransport = errors.New("transport failure")

	// ErrUpstreamStatus means the backend answered with a status other than 200.
	ErrUpstreamStatus = errors.New("upstream returned non-200 status")

	// ErrMalformedUpstreamBody means the backend answered 200 with a body that
	// is not valid json.
	ErrMalformedUpstreamBody = errors.New("malformed upstream body")

	// ErrInvalidEvent means the invocation event is missing fields required to
	// build the outbound request.
	ErrInvalidEvent = errors.New("invalid event")
)

// FailureError is returned by the handler for every failed forward. Its Error
// text is the json encoded Failure so api gateway can read it back with
// $util.parseJson in the integration response.
type FailureError struct {
	Failure Failure
	cause   error
}

// NewFailureError wraps failure with the underlying cause.
func NewFailureError(failure Failure, cause error) *FailureError {
	return &FailureError{Failure: failure, cause: cause}
}

func (e *FailureError) Error() string {
	b, err := marshal(e.Failure)
	if err != nil {
		return err.Error()
	}

	return string(b)
}

// Cause returns the error that produced the failure.
func (e *FailureError) Cause() error {
	return e.cause
}

// Unwrap supports errors.Is against the error kinds above.
func (e *FailureError) Unwrap() error {
	return e.cause
}
