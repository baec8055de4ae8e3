package provider

import (
	"errors"
	"fmt"
)

// ErrNotFound reports a resolver search that returned no candidates. It is
// recoverable: the caller drops the entity and continues the run.
var ErrNotFound = errors.New("no results found")

// HTTPError is any non-2xx, non-429 provider response. It is terminal for
// the single request that produced it and is never retried.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("provider returned status %d: %s", e.StatusCode, e.Body)
}

// RateLimitError reports a request that kept hitting HTTP 429 until the
// retry budget ran out.
type RateLimitError struct {
	Attempts int
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limited after %d attempts", e.Attempts)
}

// IsRetryable reports whether err came from the 429 path and could succeed
// later with a larger budget.
func IsRetryable(err error) bool {
	var rl *RateLimitError
	return errors.As(err, &rl)
}
