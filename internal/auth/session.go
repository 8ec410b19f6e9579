// internal/auth/session.go
package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/quadfall/quadfall/internal/models"
)

// CookieName is the cookie carrying the session token.
const CookieName = "auth_token"

// ErrUnauthenticated is returned whenever a request carries no usable
// session: missing cookie, bad signature, expired, or revoked by logout.
var ErrUnauthenticated = errors.New("unauthenticated")

// Store maps live session tokens to the identity that owns them. Logout
// removes the entry; expiry removes it implicitly via the TTL.
type Store interface {
	Put(ctx context.Context, token string, ident models.Identity, ttl time.Duration) error
	Get(ctx context.Context, token string) (models.Identity, error)
	Delete(ctx context.Context, token string) error
}

// Sessions is the session authenticator: it mints tokens on login and
// resolves inbound tokens to identities. A token must both verify against
// the signer and still be present in the store to count.
type Sessions struct {
	signer *Signer
	store  Store
}

func NewSessions(signer *Signer, store Store) *Sessions {
	return &Sessions{signer: signer, store: store}
}

// Begin opens a session for ident and returns the token to set as a cookie.
func (s *Sessions) Begin(ctx context.Context, ident models.Identity) (string, error) {
	token, err := s.signer.Mint(ident.ID)
	if err != nil {
		return "", fmt.Errorf("mint session token: %w", err)
	}
	if err := s.store.Put(ctx, token, ident, s.signer.TTL()); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	return token, nil
}

// Authenticate resolves token to an identity or returns ErrUnauthenticated.
func (s *Sessions) Authenticate(ctx context.Context, token string) (models.Identity, error) {
	if token == "" {
		return models.Identity{}, ErrUnauthenticated
	}
	if _, err := s.signer.Verify(token); err != nil {
		return models.Identity{}, ErrUnauthenticated
	}
	ident, err := s.store.Get(ctx, token)
	if err != nil {
		return models.Identity{}, ErrUnauthenticated
	}
	return ident, nil
}

// End revokes the session for token. Ending an unknown token is a no-op.
func (s *Sessions) End(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.store.Delete(ctx, token)
}

// MemoryStore is a process-local Store, used in tests and single-node runs
// without Redis.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]memorySession
}

type memorySession struct {
	ident     models.Identity
	expiresAt time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]memorySession)}
}

func (m *MemoryStore) Put(ctx context.Context, token string, ident models.Identity, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[token] = memorySession{ident: ident, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (m *MemoryStore) Get(ctx context.Context, token string) (models.Identity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[token]
	if !ok {
		return models.Identity{}, ErrUnauthenticated
	}
	if time.Now().After(sess.expiresAt) {
		delete(m.sessions, token)
		return models.Identity{}, ErrUnauthenticated
	}
	return sess.ident, nil
}

func (m *MemoryStore) Delete(ctx context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, token)
	return nil
}
