// Package prompts renders the fixed prompt templates the agent sends to the
// language model. Templates use {token} placeholders and are filled with a
// replacer rather than text/template so literal JSON braces in the template
// body survive untouched.
package prompts

import (
	_ "embed"
	"fmt"
	"strings"
)

//go:embed template/router_prompt.txt
var routerPrompt string

//go:embed template/sql_generation_prompt.txt
var sqlGenerationPrompt string

//go:embed template/row_summary_prompt.txt
var rowSummaryPrompt string

//go:embed template/search_summary_prompt.txt
var searchSummaryPrompt string

//go:embed template/chat_prompt.txt
var chatPrompt string

// RenderRouter builds the classification prompt embedding the four-tool
// vocabulary, the formatted recent history and the new user message.
func RenderRouter(history, message string) string {
	return strings.NewReplacer(
		"{history}", history,
		"{message}", message,
	).Replace(routerPrompt)
}

// RenderSQLGeneration builds the schema-aware text-to-SQL prompt.
func RenderSQLGeneration(schema, history, question string) string {
	return strings.NewReplacer(
		"{schema}", schema,
		"{history}", history,
		"{question}", question,
	).Replace(sqlGenerationPrompt)
}

// RenderRowSummary builds the "summarize this table in plain language"
// prompt over a bounded row sample plus the full row count.
func RenderRowSummary(question, rowsJSON string, rowCount, sampleCount int) string {
	return strings.NewReplacer(
		"{question}", question,
		"{rows}", rowsJSON,
		"{row_count}", fmt.Sprintf("%d", rowCount),
		"{sample_count}", fmt.Sprintf("%d", sampleCount),
	).Replace(rowSummaryPrompt)
}

// RenderSearchSummary builds the snippet synthesis prompt.
func RenderSearchSummary(question, snippets string) string {
	return strings.NewReplacer(
		"{question}", question,
		"{snippets}", snippets,
	).Replace(searchSummaryPrompt)
}

// RenderChat builds the open conversation prompt.
func RenderChat(history, message string) string {
	return strings.NewReplacer(
		"{history}", history,
		"{message}", message,
	).Replace(chatPrompt)
}
