package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/schema"

	"github.com/olist-agent-poc/server/internal/agent/model"
	"github.com/olist-agent-poc/server/internal/agent/prompts"
	"github.com/olist-agent-poc/server/internal/llm"
	"github.com/olist-agent-poc/server/internal/search"
)

const noResultsText = "I couldn't find anything on the web for that query."

// WebSearch answers general-knowledge questions from search results: fetch
// the top hits, then synthesize a short answer from the snippets. The answer
// carries no attachment.
type WebSearch struct {
	llm        llm.Completer
	provider   search.Provider
	maxResults int
}

func NewWebSearch(completer llm.Completer, provider search.Provider, cfg model.AnalysisConfig) *WebSearch {
	return &WebSearch{
		llm:        completer,
		provider:   provider,
		maxResults: cfg.SearchMaxResults,
	}
}

func (h *WebSearch) Answer(ctx context.Context, query string, _ []*schema.Message) (*model.FinalAnswer, error) {
	results, err := h.provider.Search(ctx, query, h.maxResults)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return &model.FinalAnswer{Text: noResultsText}, nil
	}

	var snippets strings.Builder
	for i, r := range results {
		snippets.WriteString(fmt.Sprintf("Snippet %d: %s\n", i+1, r.Snippet))
	}

	summary, err := h.llm.Complete(ctx, prompts.RenderSearchSummary(query, snippets.String()))
	if err != nil {
		return nil, err
	}
	return &model.FinalAnswer{Text: summary}, nil
}

var _ Handler = (*WebSearch)(nil)
