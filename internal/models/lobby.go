// internal/models/lobby.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// GameConfig is the rule set a host proposes for a lobby game. Field names
// mirror the wire format used by the client.
type GameConfig struct {
	GameMode      string `json:"gameMode"`
	StartLevel    int    `json:"startLevel"`
	BoardHeight   int    `json:"boardHeight"`
	GravityMode   string `json:"gravityMode"`
	GarbageHeight int    `json:"garbageHeight"`
	Sparsity      int    `json:"sparsity"`
	ManualShake   bool   `json:"manualShake"`
}

// DefaultGameConfig returns the config applied when a host omits fields.
func DefaultGameConfig() GameConfig {
	return GameConfig{
		GameMode:    "a",
		StartLevel:  1,
		BoardHeight: 20,
		GravityMode: "normal",
	}
}

// LobbyGame is one proposed match. GuestID is nil while the game is open and
// is set exactly once when a guest claims the slot. Only the host's display
// name goes over the wire; the guest learns the host through the same object.
type LobbyGame struct {
	ID      int64      `json:"id"`
	HostID  uuid.UUID  `json:"-"`
	Host    string     `json:"host"`
	GuestID *uuid.UUID `json:"-"`
	GameConfig
	CreatedAt time.Time `json:"createdAt"`
}

// Open reports whether the guest slot is still unclaimed.
func (g *LobbyGame) Open() bool {
	return g.GuestID == nil
}
