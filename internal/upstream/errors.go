package upstream

import (
	"errors"
	"fmt"
)

var (
	// ErrUpstreamUnavailable covers transport failures, timeouts and non-2xx answers.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	// ErrUpstreamMalformed is returned when the body does not have the expected shape.
	ErrUpstreamMalformed = errors.New("upstream returned malformed data")
)

// StatusError is a non-2xx answer from an upstream.
type StatusError struct {
	Upstream string
	Code     int
	Body     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s responded with status %d", e.Upstream, e.Code)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrUpstreamUnavailable
}

// Retryable reports whether repeating the request could succeed.
func (e *StatusError) Retryable() bool {
	return e.Code >= 500 || e.Code == 429
}
