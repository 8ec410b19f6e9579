// internal/lobby/store.go
package lobby

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/quadfall/quadfall/internal/models"
)

var (
	// ErrNotFound means no lobby game exists with the given id.
	ErrNotFound = errors.New("lobby game not found")
	// ErrAlreadyClaimed means the guest slot was filled before this attempt,
	// whether seconds or milliseconds earlier.
	ErrAlreadyClaimed = errors.New("game already has a guest")
	// ErrSelfJoin means the caller is the host of the game they tried to join.
	ErrSelfJoin = errors.New("cannot join your own game")
)

// Store persists lobby games. Claim is the one mutating operation after
// creation and must be atomic with respect to concurrent claims on the same
// id: the first claim wins, every later one gets ErrAlreadyClaimed.
type Store interface {
	// ListOpen returns every game with an unclaimed guest slot, newest first.
	ListOpen(ctx context.Context) ([]models.LobbyGame, error)
	// Get returns the game with the given id or ErrNotFound.
	Get(ctx context.Context, id int64) (models.LobbyGame, error)
	// Create persists a new open game and assigns its id and timestamp.
	Create(ctx context.Context, game models.LobbyGame) (models.LobbyGame, error)
	// Claim sets the guest on an open game. Returns ErrNotFound for an
	// unknown id and ErrAlreadyClaimed if any guest is already set.
	Claim(ctx context.Context, id int64, guestID uuid.UUID) (models.LobbyGame, error)
}
