package model

// ToolName identifies one of the four tool handlers the router can select.
type ToolName string

const (
	ToolSQLAnalyst  ToolName = "sql_analyst"
	ToolWebSearch   ToolName = "web_search"
	ToolPlotMap     ToolName = "plot_map"
	ToolGeneralChat ToolName = "general_chat"
)

// ToolNames lists the full routing vocabulary. The classification prompt and
// the decision parser must agree on exactly this set.
func ToolNames() []ToolName {
	return []ToolName{ToolSQLAnalyst, ToolWebSearch, ToolPlotMap, ToolGeneralChat}
}

// Valid reports whether the tool name is part of the routing vocabulary.
func (t ToolName) Valid() bool {
	switch t {
	case ToolSQLAnalyst, ToolWebSearch, ToolPlotMap, ToolGeneralChat:
		return true
	}
	return false
}

// RouterDecision is the parsed classification result: which handler answers
// the turn, and the sub-query it receives. A value of this type only exists
// after strict validation; an out-of-vocabulary tool never reaches here.
type RouterDecision struct {
	Tool  ToolName `json:"tool"`
	Query string   `json:"query"`
}
