package openrouter

import (
	"errors"
	"fmt"
)

// UpstreamError wraps a failed completion call: transport failure,
// non-2xx status, or a malformed response envelope. The message carries
// what the provider said; it never carries the API key. These are not
// retried here.
type UpstreamError struct {
	Status  int
	Message string
}

func (e *UpstreamError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("upstream generation failed (%d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("upstream generation failed: %s", e.Message)
}

// IsUpstreamError reports whether err is (or wraps) an UpstreamError.
func IsUpstreamError(err error) bool {
	var ue *UpstreamError
	return errors.As(err, &ue)
}
