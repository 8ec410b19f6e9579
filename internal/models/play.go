package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Play is one completed single-player or versus game submitted by the
// client, including the full input replay. Replay is kept as raw JSON; the
// server never interprets it, it only stores and echoes it.
type Play struct {
	ID            int64           `json:"id"`
	UserID        uuid.UUID       `json:"-"`
	Score         int             `json:"score"`
	Level         int             `json:"level"`
	Lines         int             `json:"lines"`
	GameMode      string          `json:"gameMode"`
	GravityMode   string          `json:"gravityMode"`
	BoardHeight   int             `json:"boardHeight"`
	StartLevel    int             `json:"startLevel"`
	GarbageHeight int             `json:"garbageHeight"`
	Sparsity      int             `json:"sparsity"`
	ManualShake   bool            `json:"manualShake"`
	Replay        json.RawMessage `json:"replay,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// Summary returns a copy with the replay blob stripped, for list endpoints.
func (p Play) Summary() Play {
	p.Replay = nil
	return p
}
