package repo

import (
	"context"
	"sync"

	"github.com/cloudwego/eino/schema"

	"github.com/olist-agent-poc/server/internal/agent/model"
)

// MemoryConversationRepository keeps conversation windows in process memory.
// Useful for tests and for running the agent without Redis. Applies the same
// FIFO window as the Redis repository.
type MemoryConversationRepository struct {
	mu       sync.Mutex
	maxTurns int
	messages map[string][]*schema.Message
}

func NewMemoryConversationRepository(maxTurns int) *MemoryConversationRepository {
	return &MemoryConversationRepository{
		maxTurns: maxTurns,
		messages: make(map[string][]*schema.Message),
	}
}

func (r *MemoryConversationRepository) AddMessage(_ context.Context, conversationID string, message *schema.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	msgs := append(r.messages[conversationID], message)
	if r.maxTurns > 0 && len(msgs) > r.maxTurns {
		msgs = msgs[len(msgs)-r.maxTurns:]
	}
	r.messages[conversationID] = msgs
	return nil
}

func (r *MemoryConversationRepository) LoadHistory(_ context.Context, conversationID string) (*model.ConversationHistory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	msgs := make([]*schema.Message, len(r.messages[conversationID]))
	copy(msgs, r.messages[conversationID])
	return &model.ConversationHistory{ConversationID: conversationID, Messages: msgs}, nil
}

func (r *MemoryConversationRepository) ClearHistory(_ context.Context, conversationID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.messages, conversationID)
	return nil
}

func (r *MemoryConversationRepository) MessageCount(_ context.Context, conversationID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.messages[conversationID]), nil
}

var _ model.ConversationRepository = (*MemoryConversationRepository)(nil)
