// internal/users/memory.go
package users

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/quadfall/quadfall/internal/models"
)

// MemoryStore is a process-local Store for tests.
type MemoryStore struct {
	mu     sync.Mutex
	byID   map[uuid.UUID]models.User
	byName map[string]uuid.UUID
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byID:   make(map[uuid.UUID]models.User),
		byName: make(map[string]uuid.UUID),
	}
}

func (m *MemoryStore) Insert(ctx context.Context, user models.User) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, taken := m.byName[user.Username]; taken {
		return models.User{}, ErrUsernameTaken
	}
	m.byID[user.ID] = user
	m.byName[user.Username] = user.ID
	return user, nil
}

func (m *MemoryStore) ByUsername(ctx context.Context, username string) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id, ok := m.byName[username]
	if !ok {
		return models.User{}, ErrNotFound
	}
	return m.byID[id], nil
}

func (m *MemoryStore) ByID(ctx context.Context, id uuid.UUID) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.byID[id]
	if !ok {
		return models.User{}, ErrNotFound
	}
	return user, nil
}
