package handlers

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errx "github.com/olist-agent-poc/server/internal/core/error"
	"github.com/olist-agent-poc/server/internal/search"
)

type stubProvider struct {
	query      string
	maxResults int
	results    []search.Result
	err        error
}

func (s *stubProvider) Search(_ context.Context, query string, maxResults int) ([]search.Result, error) {
	s.query = query
	s.maxResults = maxResults
	return s.results, s.err
}

func TestWebSearchSynthesizesSnippets(t *testing.T) {
	provider := &stubProvider{results: []search.Result{
		{Title: "Boleto - Wikipedia", Snippet: "Boleto is a Brazilian payment method.", URL: "https://en.wikipedia.org/wiki/Boleto"},
		{Title: "What is boleto?", Snippet: "A regulated payment slip used in Brazil.", URL: "https://example.com/boleto"},
	}}
	completer := &scriptedCompleter{responses: []string{"Boleto is a regulated Brazilian payment slip."}}

	h := NewWebSearch(completer, provider, analysisConfig(50))
	answer, err := h.Answer(context.Background(), "what is boleto", nil)
	require.NoError(t, err)

	assert.Equal(t, "what is boleto", provider.query)
	assert.Equal(t, 5, provider.maxResults)
	assert.NotEmpty(t, answer.Text)
	assert.False(t, answer.HasAttachment())

	require.Len(t, completer.prompts, 1)
	assert.Contains(t, completer.prompts[0], "Snippet 1: Boleto is a Brazilian payment method.")
	assert.Contains(t, completer.prompts[0], "Snippet 2: A regulated payment slip used in Brazil.")
}

func TestWebSearchNoResults(t *testing.T) {
	completer := &scriptedCompleter{}
	h := NewWebSearch(completer, &stubProvider{}, analysisConfig(50))

	answer, err := h.Answer(context.Background(), "gibberish query", nil)
	require.NoError(t, err)

	assert.Equal(t, noResultsText, answer.Text)
	// no synthesis call without snippets
	assert.Empty(t, completer.prompts)
}

func TestWebSearchProviderFailure(t *testing.T) {
	provider := &stubProvider{err: errx.WrapSearch(fmt.Errorf("connection refused"))}
	h := NewWebSearch(&scriptedCompleter{}, provider, analysisConfig(50))

	_, err := h.Answer(context.Background(), "anything", nil)

	var searchErr *errx.SearchUnavailableError
	require.True(t, errors.As(err, &searchErr))
}
