package models

import (
	"time"

	"github.com/google/uuid"
)

// ChatMessage is one immutable entry in the lobby chat log.
type ChatMessage struct {
	ID        int64     `json:"id"`
	AuthorID  uuid.UUID `json:"-"`
	Username  string    `json:"username"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}
