// internal/lobby/service.go
package lobby

import (
	"context"
	"fmt"

	"github.com/quadfall/quadfall/internal/models"
)

// Service implements the matchmaking rules on top of a Store: hosts publish
// open games, guests claim them first-come-first-served.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// ListOpen returns all joinable games, newest first.
func (s *Service) ListOpen(ctx context.Context) ([]models.LobbyGame, error) {
	games, err := s.store.ListOpen(ctx)
	if err != nil {
		return nil, fmt.Errorf("list open games: %w", err)
	}
	return games, nil
}

// Create publishes a new open game for host. Config fields the host omitted
// have already been defaulted by the decoder; creation itself cannot fail
// for business reasons.
func (s *Service) Create(ctx context.Context, host models.Identity, config models.GameConfig) (models.LobbyGame, error) {
	game := models.LobbyGame{
		HostID:     host.ID,
		Host:       host.Username,
		GameConfig: config,
	}
	created, err := s.store.Create(ctx, game)
	if err != nil {
		return models.LobbyGame{}, fmt.Errorf("create game: %w", err)
	}
	return created, nil
}

// Join claims the guest slot of game id for caller.
//
// The rejection order matters: a game that already has a guest answers
// ErrAlreadyClaimed to everyone, including its own host; only an open game
// distinguishes the host (ErrSelfJoin) from a valid guest. The final Claim
// is atomic, so two racing guests resolve to one winner and one
// ErrAlreadyClaimed.
func (s *Service) Join(ctx context.Context, id int64, caller models.Identity) (models.LobbyGame, error) {
	game, err := s.store.Get(ctx, id)
	if err != nil {
		return models.LobbyGame{}, err
	}
	if !game.Open() {
		return models.LobbyGame{}, ErrAlreadyClaimed
	}
	if game.HostID == caller.ID {
		return models.LobbyGame{}, ErrSelfJoin
	}
	return s.store.Claim(ctx, id, caller.ID)
}
