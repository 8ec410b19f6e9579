// internal/plays/plays.go
package plays

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/quadfall/quadfall/internal/models"
)

// SummaryLimit caps how many plays a listing returns.
const SummaryLimit = 50

// ErrNotFound means no play matches the id for the requesting user. A play
// belonging to someone else is indistinguishable from one that does not
// exist.
var ErrNotFound = errors.New("play not found")

// Store persists completed games and their replays. Plays are append-only.
type Store interface {
	// Insert persists a play and assigns its id and timestamp.
	Insert(ctx context.Context, play models.Play) (models.Play, error)
	// ListRecent returns up to limit plays of userID, newest first, with
	// replay blobs stripped.
	ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]models.Play, error)
	// GetOwned returns the play with the given id including its replay, or
	// ErrNotFound if absent or owned by another user.
	GetOwned(ctx context.Context, id int64, userID uuid.UUID) (models.Play, error)
}

// MemoryStore is a process-local Store for tests.
type MemoryStore struct {
	mu     sync.Mutex
	nextID int64
	plays  []models.Play
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{nextID: 1}
}

func (m *MemoryStore) Insert(ctx context.Context, play models.Play) (models.Play, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	play.ID = m.nextID
	m.nextID++
	play.CreatedAt = time.Now().UTC()
	m.plays = append(m.plays, play)
	return play, nil
}

func (m *MemoryStore) ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]models.Play, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []models.Play
	for i := len(m.plays) - 1; i >= 0 && len(out) < limit; i-- {
		if m.plays[i].UserID == userID {
			out = append(out, m.plays[i].Summary())
		}
	}
	return out, nil
}

func (m *MemoryStore) GetOwned(ctx context.Context, id int64, userID uuid.UUID) (models.Play, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, p := range m.plays {
		if p.ID == id && p.UserID == userID {
			return p, nil
		}
	}
	return models.Play{}, ErrNotFound
}
