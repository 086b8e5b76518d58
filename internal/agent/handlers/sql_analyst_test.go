package handlers

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olist-agent-poc/server/internal/agent/model"
	errx "github.com/olist-agent-poc/server/internal/core/error"
)

// scriptedCompleter returns canned responses in order and records the prompts
// it received.
type scriptedCompleter struct {
	responses []string
	prompts   []string
}

func (s *scriptedCompleter) Complete(_ context.Context, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	if len(s.responses) == 0 {
		return "", fmt.Errorf("no scripted response left")
	}
	r := s.responses[0]
	s.responses = s.responses[1:]
	return r, nil
}

type stubAnalystStore struct {
	executed string
	result   *model.QueryResult
	err      error
}

func (s *stubAnalystStore) SchemaDescription(context.Context) string {
	return "Table: olist_orders_dataset, Columns: order_id, customer_id"
}

func (s *stubAnalystStore) Execute(_ context.Context, query string) (*model.QueryResult, error) {
	s.executed = query
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func analysisConfig(maxRows int) model.AnalysisConfig {
	return model.AnalysisConfig{SummaryMaxRows: maxRows, MapPointLimit: 2000, SearchMaxResults: 5}
}

func TestSQLAnalystAnswer(t *testing.T) {
	completer := &scriptedCompleter{responses: []string{
		"```sql\nSELECT SUM(`payment_value`) AS `total_revenue` FROM `olist_order_payments_dataset`\n```",
		"The total revenue in 2017 was 1,234,567.89.",
	}}
	store := &stubAnalystStore{result: &model.QueryResult{
		Columns:  []string{"total_revenue"},
		Rows:     []map[string]any{{"total_revenue": 1234567.89}},
		RowCount: 1,
	}}

	h := NewSQLAnalyst(completer, store, analysisConfig(50))
	answer, err := h.Answer(context.Background(), "total revenue in 2017", nil)
	require.NoError(t, err)

	assert.Contains(t, answer.Text, "1,234,567.89")
	require.NotNil(t, answer.Table)
	assert.Equal(t, 1, answer.Table.RowCount)
	assert.Nil(t, answer.Points)

	// fences were stripped before execution
	assert.Equal(t, "SELECT SUM(`payment_value`) AS `total_revenue` FROM `olist_order_payments_dataset`", store.executed)
	// generation prompt embeds the schema contract
	require.Len(t, completer.prompts, 2)
	assert.Contains(t, completer.prompts[0], "olist_orders_dataset")
}

func TestSQLAnalystSampleIsBoundedAndDeterministic(t *testing.T) {
	rows := make([]map[string]any, 5)
	for i := range rows {
		rows[i] = map[string]any{"order_id": fmt.Sprintf("order-%d", i)}
	}
	store := &stubAnalystStore{result: &model.QueryResult{
		Columns:  []string{"order_id"},
		Rows:     rows,
		RowCount: len(rows),
	}}
	completer := &scriptedCompleter{responses: []string{"SELECT `order_id` FROM `olist_orders_dataset`", "summary"}}

	h := NewSQLAnalyst(completer, store, analysisConfig(2))
	_, err := h.Answer(context.Background(), "list orders", nil)
	require.NoError(t, err)

	summaryPrompt := completer.prompts[1]
	assert.Contains(t, summaryPrompt, "order-0")
	assert.Contains(t, summaryPrompt, "order-1")
	assert.NotContains(t, summaryPrompt, "order-2")
	// the full count is still reported alongside the capped sample
	assert.Contains(t, summaryPrompt, "returned 5 row(s)")
	assert.Contains(t, summaryPrompt, "first 2 row(s)")
}

func TestSQLAnalystExecutionErrorSurfaces(t *testing.T) {
	store := &stubAnalystStore{err: errx.WrapStore("SELECT nope", fmt.Errorf("unknown column"))}
	completer := &scriptedCompleter{responses: []string{"SELECT nope"}}

	h := NewSQLAnalyst(completer, store, analysisConfig(50))
	_, err := h.Answer(context.Background(), "bad question", nil)

	var queryErr *errx.QueryExecutionError
	require.True(t, errors.As(err, &queryErr))
	assert.Equal(t, "SELECT nope", queryErr.Query)
	// only the generation call happened; no summarization after failure
	assert.Len(t, completer.prompts, 1)
}

func TestSQLAnalystEmptyGeneration(t *testing.T) {
	completer := &scriptedCompleter{responses: []string{"```sql\n```"}}
	h := NewSQLAnalyst(completer, &stubAnalystStore{}, analysisConfig(50))

	_, err := h.Answer(context.Background(), "anything", nil)
	require.Error(t, err)
}
