package errx

import "fmt"

// QueryExecutionError reports a generated SQL query that failed against the
// relational store. The query text is retained so the failure can be shown
// alongside what was attempted. The handler never retries or self-corrects.
type QueryExecutionError struct {
	Query string
	Err   error
}

func (e *QueryExecutionError) Error() string {
	return fmt.Sprintf("query execution failed: %v (query: %s)", e.Err, e.Query)
}

func (e *QueryExecutionError) Unwrap() error {
	return e.Err
}

// WrapStore wraps a store execution failure with the offending query.
func WrapStore(query string, err error) error {
	if err == nil {
		return nil
	}
	return &QueryExecutionError{Query: query, Err: err}
}
