// internal/database/user.go
package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quadfall/quadfall/internal/models"
	"github.com/quadfall/quadfall/internal/users"
)

// UserStore is the Postgres-backed users.Store.
type UserStore struct {
	pool *pgxpool.Pool
}

func NewUserStore(pool *pgxpool.Pool) *UserStore {
	return &UserStore{pool: pool}
}

func (s *UserStore) Insert(ctx context.Context, user models.User) (models.User, error) {
	q := `INSERT INTO users (id, username, password) VALUES ($1, $2, $3)`
	err := pgx.BeginTxFunc(ctx, s.pool, pgx.TxOptions{}, func(tx pgx.Tx) error {
		_, execErr := tx.Exec(ctx, q, user.ID, user.Username, user.Password)
		return execErr
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return models.User{}, users.ErrUsernameTaken
		}
		return models.User{}, fmt.Errorf("insert user: %w", err)
	}
	return user, nil
}

func (s *UserStore) ByUsername(ctx context.Context, username string) (models.User, error) {
	q := `SELECT id, username, password FROM users WHERE username = $1`
	return s.scanUser(s.pool.QueryRow(ctx, q, username))
}

func (s *UserStore) ByID(ctx context.Context, id uuid.UUID) (models.User, error) {
	q := `SELECT id, username, password FROM users WHERE id = $1`
	return s.scanUser(s.pool.QueryRow(ctx, q, id))
}

func (s *UserStore) scanUser(row pgx.Row) (models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Username, &u.Password)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.User{}, users.ErrNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("scan user row: %w", err)
	}
	return u, nil
}
