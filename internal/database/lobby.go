// internal/database/lobby.go
package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quadfall/quadfall/internal/lobby"
	"github.com/quadfall/quadfall/internal/models"
)

// LobbyStore is the Postgres-backed lobby.Store. The guest claim relies on a
// conditional UPDATE, so the row transitions from open to claimed exactly
// once no matter how many joins race.
type LobbyStore struct {
	pool *pgxpool.Pool
}

func NewLobbyStore(pool *pgxpool.Pool) *LobbyStore {
	return &LobbyStore{pool: pool}
}

const lobbyGameColumns = `
	g.id, g.host_user_id, u.username, g.guest_user_id,
	g.game_mode, g.start_level, g.board_height, g.gravity_mode,
	g.garbage_height, g.sparsity, g.manual_shake, g.created_at
`

func scanLobbyGame(row pgx.Row) (models.LobbyGame, error) {
	var g models.LobbyGame
	err := row.Scan(
		&g.ID, &g.HostID, &g.Host, &g.GuestID,
		&g.GameMode, &g.StartLevel, &g.BoardHeight, &g.GravityMode,
		&g.GarbageHeight, &g.Sparsity, &g.ManualShake, &g.CreatedAt,
	)
	return g, err
}

func (s *LobbyStore) ListOpen(ctx context.Context) ([]models.LobbyGame, error) {
	q := `
	SELECT ` + lobbyGameColumns + `
	FROM lobby_games g
	JOIN users u ON u.id = g.host_user_id
	WHERE g.guest_user_id IS NULL
	ORDER BY g.created_at DESC, g.id DESC
	`
	rows, err := s.pool.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("query open games: %w", err)
	}
	defer rows.Close()

	var games []models.LobbyGame
	for rows.Next() {
		g, err := scanLobbyGame(rows)
		if err != nil {
			return nil, fmt.Errorf("scan game row: %w", err)
		}
		games = append(games, g)
	}
	return games, rows.Err()
}

func (s *LobbyStore) Get(ctx context.Context, id int64) (models.LobbyGame, error) {
	q := `
	SELECT ` + lobbyGameColumns + `
	FROM lobby_games g
	JOIN users u ON u.id = g.host_user_id
	WHERE g.id = $1
	`
	g, err := scanLobbyGame(s.pool.QueryRow(ctx, q, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return models.LobbyGame{}, lobby.ErrNotFound
	}
	if err != nil {
		return models.LobbyGame{}, fmt.Errorf("fetch game %d: %w", id, err)
	}
	return g, nil
}

func (s *LobbyStore) Create(ctx context.Context, game models.LobbyGame) (models.LobbyGame, error) {
	q := `
	INSERT INTO lobby_games (
		host_user_id, game_mode, start_level, board_height,
		gravity_mode, garbage_height, sparsity, manual_shake
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	RETURNING id, created_at
	`
	err := pgx.BeginTxFunc(ctx, s.pool, pgx.TxOptions{}, func(tx pgx.Tx) error {
		return tx.QueryRow(ctx, q,
			game.HostID, game.GameMode, game.StartLevel, game.BoardHeight,
			game.GravityMode, game.GarbageHeight, game.Sparsity, game.ManualShake,
		).Scan(&game.ID, &game.CreatedAt)
	})
	if err != nil {
		return models.LobbyGame{}, fmt.Errorf("insert game: %w", err)
	}
	game.GuestID = nil
	return game, nil
}

// Claim sets the guest on game id if and only if no guest is set. The WHERE
// clause makes the check-then-set a single statement, so concurrent claims
// serialize at the row: one updates, the rest match zero rows.
func (s *LobbyStore) Claim(ctx context.Context, id int64, guestID uuid.UUID) (models.LobbyGame, error) {
	q := `
	UPDATE lobby_games
	SET guest_user_id = $2
	WHERE id = $1 AND guest_user_id IS NULL
	`
	var claimed bool
	err := pgx.BeginTxFunc(ctx, s.pool, pgx.TxOptions{}, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, q, id, guestID)
		if err != nil {
			return err
		}
		claimed = tag.RowsAffected() == 1
		return nil
	})
	if err != nil {
		return models.LobbyGame{}, fmt.Errorf("claim game %d: %w", id, err)
	}

	if !claimed {
		// Zero rows updated: the game is either gone or already claimed.
		if _, err := s.Get(ctx, id); errors.Is(err, lobby.ErrNotFound) {
			return models.LobbyGame{}, lobby.ErrNotFound
		}
		return models.LobbyGame{}, lobby.ErrAlreadyClaimed
	}
	return s.Get(ctx, id)
}
