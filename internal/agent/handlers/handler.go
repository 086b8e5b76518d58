// Package handlers implements the four tool handlers the router dispatches
// to. Each handler is a leaf: it answers one sub-query to completion and
// never calls back into the router.
package handlers

import (
	"context"

	"github.com/cloudwego/eino/schema"

	"github.com/olist-agent-poc/server/internal/agent/model"
)

// Handler executes the work implied by one routed tool choice and produces
// the terminal answer for the turn.
type Handler interface {
	Answer(ctx context.Context, query string, history []*schema.Message) (*model.FinalAnswer, error)
}

// Registry maps each tool literal to its handler. Built once at startup.
type Registry map[model.ToolName]Handler

// NewRegistry wires one handler per vocabulary literal.
func NewRegistry(sqlAnalyst, webSearch, plotMap, generalChat Handler) Registry {
	return Registry{
		model.ToolSQLAnalyst:  sqlAnalyst,
		model.ToolWebSearch:   webSearch,
		model.ToolPlotMap:     plotMap,
		model.ToolGeneralChat: generalChat,
	}
}
