package handlers

import (
	"context"
	"testing"

	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneralChatAnswer(t *testing.T) {
	completer := &scriptedCompleter{responses: []string{"Hello! How can I help you analyze the data today?"}}
	h := NewGeneralChat(completer)

	history := []*schema.Message{schema.UserMessage("hello")}
	answer, err := h.Answer(context.Background(), "hello", history)
	require.NoError(t, err)

	assert.NotEmpty(t, answer.Text)
	assert.False(t, answer.HasAttachment())
	assert.Len(t, completer.prompts, 1)
}

func TestGeneralChatEmptyQueryFallsBackToLastUserTurn(t *testing.T) {
	completer := &scriptedCompleter{responses: []string{"You're welcome!"}}
	h := NewGeneralChat(completer)

	history := []*schema.Message{
		schema.UserMessage("total revenue in 2017?"),
		schema.AssistantMessage("It was 1,234,567.89.", nil),
		schema.UserMessage("thanks!"),
	}
	_, err := h.Answer(context.Background(), "", history)
	require.NoError(t, err)

	require.Len(t, completer.prompts, 1)
	assert.Contains(t, completer.prompts[0], `"thanks!"`)
}
