package conversations

import (
	"context"
	"strings"

	"github.com/cloudwego/eino/schema"

	"github.com/olist-agent-poc/server/internal/agent/model"
)

// Manager owns the short-term conversation window. The shell appends turns
// through it; the router only ever reads the window it is handed.
type Manager struct {
	repo     model.ConversationRepository
	maxTurns int
}

func NewManager(repo model.ConversationRepository, config model.ConversationConfig) *Manager {
	return &Manager{
		repo:     repo,
		maxTurns: config.MaxTurns,
	}
}

// AppendUser records a user turn.
func (m *Manager) AppendUser(ctx context.Context, conversationID, text string) error {
	return m.repo.AddMessage(ctx, conversationID, schema.UserMessage(text))
}

// AppendAssistant records an assistant turn.
func (m *Manager) AppendAssistant(ctx context.Context, conversationID, text string) error {
	return m.repo.AddMessage(ctx, conversationID, schema.AssistantMessage(text, nil))
}

// RecentHistory returns the bounded recent window, oldest first. The
// repository already evicts beyond the window; trimming here keeps the bound
// even when a repository with a larger capacity is plugged in.
func (m *Manager) RecentHistory(ctx context.Context, conversationID string) ([]*schema.Message, error) {
	history, err := m.repo.LoadHistory(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	return trimTail(history.Messages, m.maxTurns), nil
}

// Clear drops the conversation window.
func (m *Manager) Clear(ctx context.Context, conversationID string) error {
	return m.repo.ClearHistory(ctx, conversationID)
}

// FormatHistory renders turns as the plain "User:"/"Assistant:" transcript the
// prompts embed. Newlines inside a turn are flattened so one line stays one
// turn.
func FormatHistory(messages []*schema.Message) string {
	if len(messages) == 0 {
		return "No history yet."
	}

	var b strings.Builder
	for _, msg := range messages {
		if msg == nil || msg.Content == "" {
			continue
		}
		content := strings.TrimSpace(strings.ReplaceAll(msg.Content, "\n", " "))
		switch msg.Role {
		case schema.User:
			b.WriteString("User: " + content + "\n")
		case schema.Assistant:
			b.WriteString("Assistant: " + content + "\n")
		}
	}
	if b.Len() == 0 {
		return "No history yet."
	}
	return b.String()
}

func trimTail(messages []*schema.Message, maxTurns int) []*schema.Message {
	if maxTurns <= 0 || len(messages) <= maxTurns {
		result := make([]*schema.Message, len(messages))
		copy(result, messages)
		return result
	}
	source := messages[len(messages)-maxTurns:]
	result := make([]*schema.Message, len(source))
	copy(result, source)
	return result
}
