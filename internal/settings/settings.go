// internal/settings/settings.go
package settings

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/google/uuid"

	"github.com/quadfall/quadfall/internal/models"
)

// Store persists per-user preferences. Reads for a user without saved
// settings return the defaults; the row is created on first write.
type Store interface {
	Controls(ctx context.Context, userID uuid.UUID) (models.UserSettings, error)
	SetControls(ctx context.Context, userID uuid.UUID, s models.UserSettings) error
	GameSettings(ctx context.Context, userID uuid.UUID) (models.GameSettings, error)
	SetGameSettings(ctx context.Context, userID uuid.UUID, s models.GameSettings) error
}

// MemoryStore is a process-local Store for tests.
type MemoryStore struct {
	mu       sync.Mutex
	controls map[uuid.UUID]models.UserSettings
	game     map[uuid.UUID]models.GameSettings
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		controls: make(map[uuid.UUID]models.UserSettings),
		game:     make(map[uuid.UUID]models.GameSettings),
	}
}

func (m *MemoryStore) Controls(ctx context.Context, userID uuid.UUID) (models.UserSettings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.controls[userID]; ok {
		return s, nil
	}
	return models.UserSettings{Controls: json.RawMessage(`{}`)}, nil
}

func (m *MemoryStore) SetControls(ctx context.Context, userID uuid.UUID, s models.UserSettings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.controls[userID] = s
	return nil
}

func (m *MemoryStore) GameSettings(ctx context.Context, userID uuid.UUID) (models.GameSettings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.game[userID]; ok {
		return s, nil
	}
	return models.DefaultGameSettings(), nil
}

func (m *MemoryStore) SetGameSettings(ctx context.Context, userID uuid.UUID, s models.GameSettings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.game[userID] = s
	return nil
}
