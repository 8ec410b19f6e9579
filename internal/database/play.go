// internal/database/play.go
package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quadfall/quadfall/internal/models"
	"github.com/quadfall/quadfall/internal/plays"
)

// PlayStore is the Postgres-backed plays.Store.
type PlayStore struct {
	pool *pgxpool.Pool
}

func NewPlayStore(pool *pgxpool.Pool) *PlayStore {
	return &PlayStore{pool: pool}
}

func (s *PlayStore) Insert(ctx context.Context, play models.Play) (models.Play, error) {
	if play.Replay == nil {
		play.Replay = []byte(`{}`)
	}
	q := `
	INSERT INTO plays (
		user_id, score, level, lines, game_mode, gravity_mode,
		board_height, start_level, garbage_height, sparsity, manual_shake, replay
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	RETURNING id, created_at
	`
	err := pgx.BeginTxFunc(ctx, s.pool, pgx.TxOptions{}, func(tx pgx.Tx) error {
		return tx.QueryRow(ctx, q,
			play.UserID, play.Score, play.Level, play.Lines, play.GameMode, play.GravityMode,
			play.BoardHeight, play.StartLevel, play.GarbageHeight, play.Sparsity, play.ManualShake,
			play.Replay,
		).Scan(&play.ID, &play.CreatedAt)
	})
	if err != nil {
		return models.Play{}, fmt.Errorf("insert play: %w", err)
	}
	return play, nil
}

func (s *PlayStore) ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]models.Play, error) {
	q := `
	SELECT id, user_id, score, level, lines, game_mode, gravity_mode,
	       board_height, start_level, garbage_height, sparsity, manual_shake, created_at
	FROM plays
	WHERE user_id = $1
	ORDER BY created_at DESC, id DESC
	LIMIT $2
	`
	rows, err := s.pool.Query(ctx, q, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("query plays: %w", err)
	}
	defer rows.Close()

	var out []models.Play
	for rows.Next() {
		var p models.Play
		err := rows.Scan(
			&p.ID, &p.UserID, &p.Score, &p.Level, &p.Lines, &p.GameMode, &p.GravityMode,
			&p.BoardHeight, &p.StartLevel, &p.GarbageHeight, &p.Sparsity, &p.ManualShake,
			&p.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan play row: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *PlayStore) GetOwned(ctx context.Context, id int64, userID uuid.UUID) (models.Play, error) {
	q := `
	SELECT id, user_id, score, level, lines, game_mode, gravity_mode,
	       board_height, start_level, garbage_height, sparsity, manual_shake, replay, created_at
	FROM plays
	WHERE id = $1 AND user_id = $2
	`
	var p models.Play
	err := s.pool.QueryRow(ctx, q, id, userID).Scan(
		&p.ID, &p.UserID, &p.Score, &p.Level, &p.Lines, &p.GameMode, &p.GravityMode,
		&p.BoardHeight, &p.StartLevel, &p.GarbageHeight, &p.Sparsity, &p.ManualShake,
		&p.Replay, &p.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Play{}, plays.ErrNotFound
	}
	if err != nil {
		return models.Play{}, fmt.Errorf("fetch play %d: %w", id, err)
	}
	return p, nil
}
