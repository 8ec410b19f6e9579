// internal/users/users.go
package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/quadfall/quadfall/internal/auth"
	"github.com/quadfall/quadfall/internal/models"
)

var (
	// ErrUsernameTaken means another account already owns the username.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrNotFound means no account matches the lookup.
	ErrNotFound = errors.New("user not found")
	// ErrInvalidCredentials covers both unknown username and wrong password;
	// callers must not be able to tell the two apart.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Store persists accounts.
type Store interface {
	// Insert persists a new user with an already-hashed password and assigns
	// its id. Returns ErrUsernameTaken on a username collision.
	Insert(ctx context.Context, user models.User) (models.User, error)
	// ByUsername returns the user owning username or ErrNotFound.
	ByUsername(ctx context.Context, username string) (models.User, error)
	// ByID returns the user with the given id or ErrNotFound.
	ByID(ctx context.Context, id uuid.UUID) (models.User, error)
}

// Service is the identity provider boundary: it owns password hashing and
// credential checks so nothing else ever sees a plaintext password.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Register creates a new account with the given plaintext password.
func (s *Service) Register(ctx context.Context, username, password string) (models.User, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}
	user, err := s.store.Insert(ctx, models.User{
		ID:       uuid.New(),
		Username: username,
		Password: hash,
	})
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

// Authenticate checks username/password and returns the account on success.
func (s *Service) Authenticate(ctx context.Context, username, password string) (models.User, error) {
	user, err := s.store.ByUsername(ctx, username)
	if errors.Is(err, ErrNotFound) {
		return models.User{}, ErrInvalidCredentials
	}
	if err != nil {
		return models.User{}, fmt.Errorf("look up user: %w", err)
	}

	match, err := auth.VerifyPassword(password, user.Password)
	if err != nil || !match {
		return models.User{}, ErrInvalidCredentials
	}
	return user, nil
}
