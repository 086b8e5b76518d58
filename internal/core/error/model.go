package errx

import (
	"fmt"
	"net/http"
	"strings"
)

// RateLimitError reports an exhausted language model quota, the dominant
// real-world failure mode of this system.
type RateLimitError struct {
	Err error
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("language model rate limited: %v", e.Err)
}

func (e *RateLimitError) Unwrap() error {
	return e.Err
}

// WrapModel maps language model errors to the unified error types, detecting
// quota exhaustion so callers can distinguish it from other provider failures.
func WrapModel(err error) error {
	if err == nil {
		return nil
	}
	if isRateLimited(err) {
		return &RateLimitError{Err: err}
	}
	return New(err, http.StatusBadGateway, ModelErrorMessage)
}

// isRateLimited inspects the provider error text. The genai SDK does not
// expose a stable typed error for quota exhaustion, so match on the status
// markers Gemini actually returns.
func isRateLimited(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "resource_exhausted") ||
		strings.Contains(msg, "rate limit") ||
		strings.Contains(msg, "quota")
}
