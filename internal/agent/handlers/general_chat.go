package handlers

import (
	"context"

	"github.com/cloudwego/eino/schema"

	"github.com/olist-agent-poc/server/internal/agent/conversations"
	"github.com/olist-agent-poc/server/internal/agent/model"
	"github.com/olist-agent-poc/server/internal/agent/prompts"
	"github.com/olist-agent-poc/server/internal/llm"
)

// GeneralChat passes the message through to the language model with
// conversational framing. One LLM call, no other side effects.
type GeneralChat struct {
	llm llm.Completer
}

func NewGeneralChat(completer llm.Completer) *GeneralChat {
	return &GeneralChat{llm: completer}
}

func (h *GeneralChat) Answer(ctx context.Context, query string, history []*schema.Message) (*model.FinalAnswer, error) {
	// The router may hand over an empty sub-query for greetings; the user's
	// actual words are the latest user turn in the window.
	if query == "" {
		query = lastUserTurn(history)
	}

	text, err := h.llm.Complete(ctx, prompts.RenderChat(conversations.FormatHistory(history), query))
	if err != nil {
		return nil, err
	}
	return &model.FinalAnswer{Text: text}, nil
}

func lastUserTurn(history []*schema.Message) string {
	for i := len(history) - 1; i >= 0; i-- {
		if history[i] != nil && history[i].Role == schema.User {
			return history[i].Content
		}
	}
	return ""
}

var _ Handler = (*GeneralChat)(nil)
