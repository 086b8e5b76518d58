// Package router implements the single-turn decision procedure: one LLM call
// classifies the user's message into exactly one of the four tool literals
// plus a sub-query, and the matching handler runs to completion. The router
// performs no keyword heuristics of its own; the model is the sole arbiter of
// intent.
package router

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/schema"

	"github.com/olist-agent-poc/server/internal/agent/conversations"
	"github.com/olist-agent-poc/server/internal/agent/handlers"
	"github.com/olist-agent-poc/server/internal/agent/model"
	"github.com/olist-agent-poc/server/internal/agent/parsers"
	"github.com/olist-agent-poc/server/internal/agent/prompts"
	"github.com/olist-agent-poc/server/internal/llm"
	logx "github.com/olist-agent-poc/server/pkg/logger"
)

type Router struct {
	llm      llm.Completer
	handlers handlers.Registry
}

func New(completer llm.Completer, registry handlers.Registry) *Router {
	return &Router{
		llm:      completer,
		handlers: registry,
	}
}

// Decide classifies the message against the recent history. It never mutates
// the history; the caller owns appending turns. An unparseable or
// out-of-vocabulary classification surfaces as a RouterParseError rather than
// falling back to a guessed tool.
func (r *Router) Decide(ctx context.Context, message string, history []*schema.Message) (*model.RouterDecision, error) {
	if message == "" {
		return nil, fmt.Errorf("message is empty")
	}

	prompt := prompts.RenderRouter(conversations.FormatHistory(history), message)
	raw, err := r.llm.Complete(ctx, prompt)
	if err != nil {
		return nil, err
	}

	decision, err := parsers.ParseRouterDecision(raw)
	if err != nil {
		logx.Warn().Err(err).Msg("classification response rejected")
		return nil, err
	}

	logx.Debug().
		Str("tool", string(decision.Tool)).
		Str("query", decision.Query).
		Msg("routed")
	return decision, nil
}

// Route dispatches a decision to the matching handler.
func (r *Router) Route(ctx context.Context, decision *model.RouterDecision, history []*schema.Message) (*model.FinalAnswer, error) {
	handler, ok := r.handlers[decision.Tool]
	if !ok {
		return nil, fmt.Errorf("no handler registered for tool %q", decision.Tool)
	}
	return handler.Answer(ctx, decision.Query, history)
}

// Respond runs one full turn: classify, dispatch, and return the final
// answer. The whole turn blocks until done or fails outright.
func (r *Router) Respond(ctx context.Context, message string, history []*schema.Message) (*model.FinalAnswer, error) {
	decision, err := r.Decide(ctx, message, history)
	if err != nil {
		return nil, err
	}
	return r.Route(ctx, decision, history)
}
