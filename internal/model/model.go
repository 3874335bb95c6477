package model

import (
	"encoding/json"
	"time"
)

// GameResult is the history row written when a game finishes.
type GameResult struct {
	ID               string          `json:"id"`
	GameID           string          `json:"game_id"`
	GameWinner       string          `json:"game_winner"`
	PlayerArmyType   string          `json:"player_army_type"`
	PlayerCount      int             `json:"player_count"`
	PlayerStrength   float64         `json:"player_strength"`
	OpponentArmyType string          `json:"ai_army_type"`
	OpponentCount    int             `json:"ai_count"`
	OpponentStrength float64         `json:"ai_strength"`
	PlayerR2Pool     int             `json:"player_r2_pool"`
	OpponentR2Pool   int             `json:"ai_r2_pool"`
	FinalMap         json.RawMessage `json:"final_map"`
	CreatedAt        time.Time       `json:"created_at"`
}

// Stats counts finished games by winner.
type Stats struct {
	Games      int `json:"games"`
	PlayerWins int `json:"player_wins"`
	AIWins     int `json:"ai_wins"`
	Draws      int `json:"draws"`
}
