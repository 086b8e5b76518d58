package errx

import (
	"errors"
	"fmt"
)

const (
	// SystemErrorMessage is a user-facing fallback when internal errors occur.
	SystemErrorMessage = "internal server error"
	// RedisErrorMessage describes Redis related failures.
	RedisErrorMessage = "redis operation failed"
	// RedisNotFoundMessage describes a missing Redis key.
	RedisNotFoundMessage = "redis key not found"
	// StoreErrorMessage describes relational store failures.
	StoreErrorMessage = "database query failed"
	// ModelErrorMessage describes language model request failures.
	ModelErrorMessage = "language model request failed"
	// SearchErrorMessage describes search provider failures.
	SearchErrorMessage = "web search is unavailable"
)

// AppError wraps an underlying error with an HTTP-ish status and safe message.
type AppError struct {
	Err     error
	Status  int
	Message string
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

// Unwrap exposes the underlying error for errors.Is / errors.As support.
func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError with the provided information.
func New(err error, status int, message string) *AppError {
	return &AppError{
		Err:     err,
		Status:  status,
		Message: message,
	}
}

// Is reports whether the target matches the underlying error or the AppError itself.
func (e *AppError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// As allows casting to AppError or the wrapped error in a chain.
func (e *AppError) As(target any) bool {
	if errors.As(e.Err, target) {
		return true
	}
	if t, ok := target.(**AppError); ok {
		*t = e
		return true
	}
	return false
}

// UserMessage renders an error as the plain-text failure message shown to the
// end user in place of an answer. Every turn fails independently, so the text
// only needs to describe this one failure.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var parseErr *RouterParseError
	if errors.As(err, &parseErr) {
		return "I could not work out which tool should answer that. Please try rephrasing your question."
	}
	var queryErr *QueryExecutionError
	if errors.As(err, &queryErr) {
		return fmt.Sprintf("The generated database query failed to run: %v", queryErr.Err)
	}
	var searchErr *SearchUnavailableError
	if errors.As(err, &searchErr) {
		return "Web search is unavailable right now, so I could not look that up."
	}
	var rateErr *RateLimitError
	if errors.As(err, &rateErr) {
		return "The language model is rate limited at the moment. Please wait a little and ask again."
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return SystemErrorMessage
}
