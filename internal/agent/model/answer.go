package model

// QueryResult holds the tabular outcome of one store query. It lives only for
// the handler invocation that produced it and is never persisted.
type QueryResult struct {
	// Columns preserves the select-list order of the executed query.
	Columns  []string
	Rows     []map[string]any
	RowCount int
}

// GeoPoint is a single renderable coordinate.
type GeoPoint struct {
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
	Label string  `json:"label,omitempty"`
}

// FinalAnswer is the terminal artifact of one turn. Text always carries the
// reply; at most one of Table or Points is set, depending on the handler.
// The shell decides whether the answer joins the conversation history.
type FinalAnswer struct {
	Text   string
	Table  *QueryResult
	Points []GeoPoint
}

// HasAttachment reports whether the answer carries renderable data beyond text.
func (a *FinalAnswer) HasAttachment() bool {
	return a.Table != nil || a.Points != nil
}
