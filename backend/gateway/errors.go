package gateway

import (
	"errors"
	"fmt"
)

// Failure modes of a webhook call. The API layer maps these to HTTP status
// codes, so they must stay distinguishable instead of collapsing into one
// generic error.
var (
	// ErrNotFound means the external store reported the named task as
	// absent.
	ErrNotFound = errors.New("task not found")

	// ErrUpstreamUnavailable covers dial failures, timeouts and non-2xx
	// responses from the webhook.
	ErrUpstreamUnavailable = errors.New("webhook unavailable")

	// ErrMalformedResponse means the webhook answered but the body could
	// not be reshaped into the expected result. Callers treat it like an
	// upstream failure; logs and metrics keep it separate.
	ErrMalformedResponse = errors.New("malformed webhook response")
)

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsUpstreamUnavailable(err error) bool {
	return errors.Is(err, ErrUpstreamUnavailable)
}

func IsMalformedResponse(err error) bool {
	return errors.Is(err, ErrMalformedResponse)
}

func notFoundError(name string) error {
	return fmt.Errorf("%w: %q", ErrNotFound, name)
}

func upstreamError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrUpstreamUnavailable, fmt.Sprintf(format, args...))
}

func malformedError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformedResponse, fmt.Sprintf(format, args...))
}
