// internal/cache/redis.go
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/quadfall/quadfall/internal/auth"
	"github.com/quadfall/quadfall/internal/models"
)

const sessionKeyPrefix = "session:"

// Connect opens a Redis client and verifies it with a ping.
func Connect(addr string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis at %s: %w", addr, err)
	}
	return client, nil
}

// SessionStore keeps live sessions in Redis so logout revocation and expiry
// are shared across server instances. Values are the JSON-encoded identity;
// the key TTL enforces the session lifetime.
type SessionStore struct {
	client *redis.Client
}

func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

func (s *SessionStore) Put(ctx context.Context, token string, ident models.Identity, ttl time.Duration) error {
	data, err := json.Marshal(ident)
	if err != nil {
		return fmt.Errorf("marshal session identity: %w", err)
	}
	return s.client.Set(ctx, sessionKeyPrefix+token, data, ttl).Err()
}

func (s *SessionStore) Get(ctx context.Context, token string) (models.Identity, error) {
	data, err := s.client.Get(ctx, sessionKeyPrefix+token).Result()
	if err == redis.Nil {
		return models.Identity{}, auth.ErrUnauthenticated
	}
	if err != nil {
		return models.Identity{}, fmt.Errorf("fetch session: %w", err)
	}
	var ident models.Identity
	if err := json.Unmarshal([]byte(data), &ident); err != nil {
		return models.Identity{}, fmt.Errorf("unmarshal session identity: %w", err)
	}
	return ident, nil
}

func (s *SessionStore) Delete(ctx context.Context, token string) error {
	return s.client.Del(ctx, sessionKeyPrefix+token).Err()
}
