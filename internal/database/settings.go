// internal/database/settings.go
package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quadfall/quadfall/internal/models"
)

// SettingsStore is the Postgres-backed settings.Store. Rows are created
// lazily on first write; reads without a row return the defaults.
type SettingsStore struct {
	pool *pgxpool.Pool
}

func NewSettingsStore(pool *pgxpool.Pool) *SettingsStore {
	return &SettingsStore{pool: pool}
}

func (s *SettingsStore) Controls(ctx context.Context, userID uuid.UUID) (models.UserSettings, error) {
	q := `SELECT controls FROM user_settings WHERE user_id = $1`
	var out models.UserSettings
	err := s.pool.QueryRow(ctx, q, userID).Scan(&out.Controls)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.UserSettings{Controls: []byte(`{}`)}, nil
	}
	if err != nil {
		return models.UserSettings{}, fmt.Errorf("fetch user settings: %w", err)
	}
	return out, nil
}

func (s *SettingsStore) SetControls(ctx context.Context, userID uuid.UUID, in models.UserSettings) error {
	q := `
	INSERT INTO user_settings (user_id, controls)
	VALUES ($1, $2)
	ON CONFLICT (user_id) DO UPDATE SET controls = $2
	`
	err := pgx.BeginTxFunc(ctx, s.pool, pgx.TxOptions{}, func(tx pgx.Tx) error {
		_, execErr := tx.Exec(ctx, q, userID, in.Controls)
		return execErr
	})
	if err != nil {
		return fmt.Errorf("upsert user settings: %w", err)
	}
	return nil
}

func (s *SettingsStore) GameSettings(ctx context.Context, userID uuid.UUID) (models.GameSettings, error) {
	q := `
	SELECT player_count, board_height, game_mode, start_level, gravity_mode,
	       manual_shake, shake_animation, garbage_height, sparsity
	FROM game_settings
	WHERE user_id = $1
	`
	var out models.GameSettings
	err := s.pool.QueryRow(ctx, q, userID).Scan(
		&out.PlayerCount, &out.BoardHeight, &out.GameMode, &out.StartLevel, &out.GravityMode,
		&out.ManualShake, &out.ShakeAnimation, &out.GarbageHeight, &out.Sparsity,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.DefaultGameSettings(), nil
	}
	if err != nil {
		return models.GameSettings{}, fmt.Errorf("fetch game settings: %w", err)
	}
	return out, nil
}

func (s *SettingsStore) SetGameSettings(ctx context.Context, userID uuid.UUID, in models.GameSettings) error {
	q := `
	INSERT INTO game_settings (
		user_id, player_count, board_height, game_mode, start_level,
		gravity_mode, manual_shake, shake_animation, garbage_height, sparsity
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	ON CONFLICT (user_id) DO UPDATE SET
		player_count = $2, board_height = $3, game_mode = $4, start_level = $5,
		gravity_mode = $6, manual_shake = $7, shake_animation = $8,
		garbage_height = $9, sparsity = $10
	`
	err := pgx.BeginTxFunc(ctx, s.pool, pgx.TxOptions{}, func(tx pgx.Tx) error {
		_, execErr := tx.Exec(ctx, q, userID,
			in.PlayerCount, in.BoardHeight, in.GameMode, in.StartLevel,
			in.GravityMode, in.ManualShake, in.ShakeAnimation, in.GarbageHeight, in.Sparsity,
		)
		return execErr
	})
	if err != nil {
		return fmt.Errorf("upsert game settings: %w", err)
	}
	return nil
}
