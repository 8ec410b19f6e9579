// internal/lobby/memory.go
package lobby

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/quadfall/quadfall/internal/models"
)

// MemoryStore is a process-local Store. All mutation happens under one
// mutex, which serializes the check-then-set in Claim; per-game locking is
// not worth it at lobby volumes.
type MemoryStore struct {
	mu     sync.Mutex
	nextID int64
	games  map[int64]*models.LobbyGame
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		nextID: 1,
		games:  make(map[int64]*models.LobbyGame),
	}
}

func (m *MemoryStore) ListOpen(ctx context.Context) ([]models.LobbyGame, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var open []models.LobbyGame
	for _, g := range m.games {
		if g.Open() {
			open = append(open, *g)
		}
	}
	sort.Slice(open, func(i, j int) bool {
		if open[i].CreatedAt.Equal(open[j].CreatedAt) {
			return open[i].ID > open[j].ID
		}
		return open[i].CreatedAt.After(open[j].CreatedAt)
	})
	return open, nil
}

func (m *MemoryStore) Get(ctx context.Context, id int64) (models.LobbyGame, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	g, ok := m.games[id]
	if !ok {
		return models.LobbyGame{}, ErrNotFound
	}
	return *g, nil
}

func (m *MemoryStore) Create(ctx context.Context, game models.LobbyGame) (models.LobbyGame, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	game.ID = m.nextID
	m.nextID++
	game.GuestID = nil
	game.CreatedAt = time.Now().UTC()
	m.games[game.ID] = &game
	return game, nil
}

func (m *MemoryStore) Claim(ctx context.Context, id int64, guestID uuid.UUID) (models.LobbyGame, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	g, ok := m.games[id]
	if !ok {
		return models.LobbyGame{}, ErrNotFound
	}
	if !g.Open() {
		return models.LobbyGame{}, ErrAlreadyClaimed
	}
	g.GuestID = &guestID
	return *g, nil
}
