package models

import "encoding/json"

// UserSettings holds per-user client preferences. Controls is an opaque
// key-binding blob owned entirely by the client.
type UserSettings struct {
	Controls json.RawMessage `json:"controls"`
}

// GameSettings are the per-user default game options, preloaded into the
// new-game form on the client.
type GameSettings struct {
	PlayerCount    int    `json:"playerCount"`
	BoardHeight    int    `json:"boardHeight"`
	GameMode       string `json:"gameMode"`
	StartLevel     int    `json:"startLevel"`
	GravityMode    string `json:"gravityMode"`
	ManualShake    bool   `json:"manualShake"`
	ShakeAnimation bool   `json:"shakeAnimation"`
	GarbageHeight  int    `json:"garbageHeight"`
	Sparsity       int    `json:"sparsity"`
}

// DefaultGameSettings mirrors the defaults the client assumes for a fresh
// account.
func DefaultGameSettings() GameSettings {
	return GameSettings{
		PlayerCount: 1,
		BoardHeight: 20,
		GameMode:    "a",
		StartLevel:  1,
		GravityMode: "normal",
	}
}
