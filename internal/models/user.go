package models

import "github.com/google/uuid"

// User is a registered account. Password holds the argon2id encoded hash
// once persisted and is never serialized.
type User struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Password string    `json:"-"`
}

// Identity is the authenticated principal attached to a request after the
// session check. It carries only what handlers need to attribute actions.
type Identity struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
}
