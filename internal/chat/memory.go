// internal/chat/memory.go
package chat

import (
	"context"
	"sync"
	"time"

	"github.com/quadfall/quadfall/internal/models"
)

// MemoryStore is a process-local append-only Store.
type MemoryStore struct {
	mu     sync.Mutex
	nextID int64
	log    []models.ChatMessage
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{nextID: 1}
}

func (m *MemoryStore) Append(ctx context.Context, msg models.ChatMessage) (models.ChatMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	msg.ID = m.nextID
	m.nextID++
	msg.CreatedAt = time.Now().UTC()
	m.log = append(m.log, msg)
	return msg, nil
}

func (m *MemoryStore) Newest(ctx context.Context, limit int) ([]models.ChatMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := len(m.log)
	if limit > n {
		limit = n
	}
	out := make([]models.ChatMessage, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		out = append(out, m.log[i])
	}
	return out, nil
}
