package parsers

import (
	"encoding/json"
	"strings"

	"github.com/olist-agent-poc/server/internal/agent/model"
	errx "github.com/olist-agent-poc/server/internal/core/error"
	logx "github.com/olist-agent-poc/server/pkg/logger"
)

// basic safety limit to avoid pathological inputs
const maxContentLen = 64 * 1024 // 64KB

// ParseRouterDecision converts the raw classification response into a
// RouterDecision. The wire contract is bit-exact: after stripping markdown
// fences, the text must contain a single JSON object with exactly the fields
// "tool" and "query", and "tool" must be one of the four vocabulary literals.
// Anything else is a RouterParseError carrying the raw text; no fallback tool
// is ever substituted.
func ParseRouterDecision(content string) (*model.RouterDecision, error) {
	raw := content
	if len(content) > maxContentLen {
		logx.Warn().
			Str("component", "decision_parser").
			Int("max_len", maxContentLen).
			Int("orig_len", len(content)).
			Msg("content truncated due to size limit")
		content = content[:maxContentLen]
	}

	content = stripFences(content)

	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end < start {
		return nil, errx.NewRouterParse(raw, "no json object")
	}
	content = content[start : end+1]

	var fields struct {
		Tool  *string `json:"tool"`
		Query *string `json:"query"`
	}
	dec := json.NewDecoder(strings.NewReader(content))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&fields); err != nil {
		return nil, errx.NewRouterParse(raw, "malformed json: "+err.Error())
	}
	if fields.Tool == nil {
		return nil, errx.NewRouterParse(raw, "missing tool field")
	}
	if fields.Query == nil {
		return nil, errx.NewRouterParse(raw, "missing query field")
	}

	tool := model.ToolName(strings.TrimSpace(*fields.Tool))
	if !tool.Valid() {
		return nil, errx.NewRouterParse(raw, "unknown tool "+string(tool))
	}

	return &model.RouterDecision{
		Tool:  tool,
		Query: strings.TrimSpace(*fields.Query),
	}, nil
}

// ExtractSQL strips markdown fences and whitespace from a generated query.
// Returns the empty string when nothing usable remains.
func ExtractSQL(content string) string {
	content = stripFences(content)
	return strings.TrimSpace(content)
}

func stripFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```sql", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}
