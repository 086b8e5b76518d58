package handlers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cloudwego/eino/schema"

	"github.com/olist-agent-poc/server/internal/agent/conversations"
	"github.com/olist-agent-poc/server/internal/agent/model"
	"github.com/olist-agent-poc/server/internal/agent/parsers"
	"github.com/olist-agent-poc/server/internal/agent/prompts"
	errx "github.com/olist-agent-poc/server/internal/core/error"
	"github.com/olist-agent-poc/server/internal/llm"
	logx "github.com/olist-agent-poc/server/pkg/logger"
)

// AnalystStore is the slice of the relational store the SQL analyst needs.
type AnalystStore interface {
	SchemaDescription(ctx context.Context) string
	Execute(ctx context.Context, query string) (*model.QueryResult, error)
}

// SQLAnalyst answers database questions in three sequential steps: generate a
// read-only query from the schema-aware prompt, execute it, then summarize
// the rows in plain language. Each step's failure short-circuits the turn;
// there is no retry and no query repair.
type SQLAnalyst struct {
	llm            llm.Completer
	store          AnalystStore
	summaryMaxRows int
}

func NewSQLAnalyst(completer llm.Completer, store AnalystStore, cfg model.AnalysisConfig) *SQLAnalyst {
	return &SQLAnalyst{
		llm:            completer,
		store:          store,
		summaryMaxRows: cfg.SummaryMaxRows,
	}
}

func (h *SQLAnalyst) Answer(ctx context.Context, query string, history []*schema.Message) (*model.FinalAnswer, error) {
	// Step 1: generate the query.
	genPrompt := prompts.RenderSQLGeneration(
		h.store.SchemaDescription(ctx),
		conversations.FormatHistory(history),
		query,
	)
	raw, err := h.llm.Complete(ctx, genPrompt)
	if err != nil {
		return nil, err
	}
	sqlText := parsers.ExtractSQL(raw)
	if sqlText == "" {
		return nil, errx.WrapStore(raw, fmt.Errorf("model produced no query"))
	}
	logx.Debug().Str("sql", sqlText).Msg("generated query")

	// Step 2: execute it. The store enforces the read-only guard.
	result, err := h.store.Execute(ctx, sqlText)
	if err != nil {
		return nil, err
	}

	// Step 3: summarize a bounded sample plus the full row count.
	sample := sampleRows(result, h.summaryMaxRows)
	sampleJSON, err := json.Marshal(sample)
	if err != nil {
		return nil, fmt.Errorf("marshal row sample: %w", err)
	}
	summary, err := h.llm.Complete(ctx, prompts.RenderRowSummary(query, string(sampleJSON), result.RowCount, len(sample)))
	if err != nil {
		return nil, err
	}

	return &model.FinalAnswer{Text: summary, Table: result}, nil
}

// sampleRows takes the first n rows in result order, so the summarization
// input is deterministic for a given row set.
func sampleRows(result *model.QueryResult, n int) []map[string]any {
	if n <= 0 || len(result.Rows) <= n {
		return result.Rows
	}
	return result.Rows[:n]
}

var _ Handler = (*SQLAnalyst)(nil)
