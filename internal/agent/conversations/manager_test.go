package conversations

import (
	"context"
	"fmt"
	"testing"

	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olist-agent-poc/server/internal/agent/model"
	"github.com/olist-agent-poc/server/internal/agent/repo"
)

func newTestManager(maxTurns int) *Manager {
	return NewManager(
		repo.NewMemoryConversationRepository(maxTurns),
		model.ConversationConfig{TTL: "15m", MaxTurns: maxTurns},
	)
}

func TestWindowEvictsOldestFirst(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(4)

	for i := 0; i < 5; i++ {
		require.NoError(t, m.AppendUser(ctx, "conv-1", fmt.Sprintf("message %d", i)))
	}

	history, err := m.RecentHistory(ctx, "conv-1")
	require.NoError(t, err)

	require.Len(t, history, 4)
	assert.Equal(t, "message 1", history[0].Content)
	assert.Equal(t, "message 4", history[3].Content)
}

func TestWindowNeverExceedsConfiguredTurns(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(6)

	for i := 0; i < 20; i++ {
		require.NoError(t, m.AppendUser(ctx, "conv-1", fmt.Sprintf("q%d", i)))
		require.NoError(t, m.AppendAssistant(ctx, "conv-1", fmt.Sprintf("a%d", i)))

		history, err := m.RecentHistory(ctx, "conv-1")
		require.NoError(t, err)
		assert.LessOrEqual(t, len(history), 6)
	}
}

func TestConversationsAreIsolated(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(4)

	require.NoError(t, m.AppendUser(ctx, "conv-a", "hello from a"))
	require.NoError(t, m.AppendUser(ctx, "conv-b", "hello from b"))

	historyA, err := m.RecentHistory(ctx, "conv-a")
	require.NoError(t, err)
	require.Len(t, historyA, 1)
	assert.Equal(t, "hello from a", historyA[0].Content)
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(4)

	require.NoError(t, m.AppendUser(ctx, "conv-1", "hello"))
	require.NoError(t, m.Clear(ctx, "conv-1"))

	history, err := m.RecentHistory(ctx, "conv-1")
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestFormatHistory(t *testing.T) {
	assert.Equal(t, "No history yet.", FormatHistory(nil))

	msgs := []*schema.Message{
		schema.UserMessage("total revenue\nin 2017?"),
		schema.AssistantMessage("It was 1,234,567.89.", nil),
		nil,
		schema.SystemMessage("ignored"),
	}
	formatted := FormatHistory(msgs)
	assert.Contains(t, formatted, "User: total revenue in 2017?")
	assert.Contains(t, formatted, "Assistant: It was 1,234,567.89.")
	assert.NotContains(t, formatted, "ignored")
}
