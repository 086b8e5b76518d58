package errx

import "fmt"

// SearchUnavailableError reports a search provider or network failure. The
// handler surfaces it without retrying.
type SearchUnavailableError struct {
	Err error
}

func (e *SearchUnavailableError) Error() string {
	return fmt.Sprintf("search provider failed: %v", e.Err)
}

func (e *SearchUnavailableError) Unwrap() error {
	return e.Err
}

// WrapSearch wraps a search provider failure.
func WrapSearch(err error) error {
	if err == nil {
		return nil
	}
	return &SearchUnavailableError{Err: err}
}
