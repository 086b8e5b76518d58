package errx

import "fmt"

const maxRawSnippet = 200

// RouterParseError reports a classification response that did not deserialize
// to the fixed {"tool","query"} contract, or named a tool outside the
// vocabulary. The raw model output is retained for diagnostics; no fallback
// tool is ever chosen in its place.
type RouterParseError struct {
	Raw    string
	Reason string
}

func (e *RouterParseError) Error() string {
	raw := e.Raw
	if len(raw) > maxRawSnippet {
		raw = raw[:maxRawSnippet]
	}
	return fmt.Sprintf("router decision unparseable (%s): %q", e.Reason, raw)
}

// NewRouterParse creates a RouterParseError carrying the raw model output.
func NewRouterParse(raw, reason string) *RouterParseError {
	return &RouterParseError{Raw: raw, Reason: reason}
}
