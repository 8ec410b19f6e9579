// internal/database/db.go
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Connect opens a pgx pool against dsn and verifies it with a ping.
func Connect(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse pgx config: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create pgx pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}

// EnsureSchema creates all tables if they do not exist yet. Idempotent, run
// once at startup.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	const schema = `
	CREATE TABLE IF NOT EXISTS users (
		id        uuid PRIMARY KEY,
		username  text NOT NULL UNIQUE,
		password  text NOT NULL
	);

	CREATE TABLE IF NOT EXISTS lobby_games (
		id             bigserial PRIMARY KEY,
		host_user_id   uuid NOT NULL REFERENCES users(id),
		guest_user_id  uuid REFERENCES users(id),
		game_mode      text NOT NULL,
		start_level    int NOT NULL,
		board_height   int NOT NULL,
		gravity_mode   text NOT NULL,
		garbage_height int NOT NULL,
		sparsity       int NOT NULL,
		manual_shake   boolean NOT NULL,
		created_at     timestamptz NOT NULL DEFAULT now()
	);

	CREATE TABLE IF NOT EXISTS chat_messages (
		id         bigserial PRIMARY KEY,
		user_id    uuid NOT NULL REFERENCES users(id),
		message    varchar(500) NOT NULL,
		created_at timestamptz NOT NULL DEFAULT now()
	);

	CREATE TABLE IF NOT EXISTS plays (
		id             bigserial PRIMARY KEY,
		user_id        uuid NOT NULL REFERENCES users(id),
		score          int NOT NULL,
		level          int NOT NULL,
		lines          int NOT NULL,
		game_mode      text NOT NULL,
		gravity_mode   text NOT NULL,
		board_height   int NOT NULL,
		start_level    int NOT NULL,
		garbage_height int NOT NULL,
		sparsity       int NOT NULL,
		manual_shake   boolean NOT NULL,
		replay         jsonb NOT NULL DEFAULT '{}',
		created_at     timestamptz NOT NULL DEFAULT now()
	);

	CREATE TABLE IF NOT EXISTS user_settings (
		user_id  uuid PRIMARY KEY REFERENCES users(id),
		controls jsonb NOT NULL DEFAULT '{}'
	);

	CREATE TABLE IF NOT EXISTS game_settings (
		user_id         uuid PRIMARY KEY REFERENCES users(id),
		player_count    int NOT NULL,
		board_height    int NOT NULL,
		game_mode       text NOT NULL,
		start_level     int NOT NULL,
		gravity_mode    text NOT NULL,
		manual_shake    boolean NOT NULL,
		shake_animation boolean NOT NULL,
		garbage_height  int NOT NULL,
		sparsity        int NOT NULL
	);
	`
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
