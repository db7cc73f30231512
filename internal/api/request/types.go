package request

import (
	"github.com/kunalgolani-work/kachuful-backend/internal/model"
	"github.com/kunalgolani-work/kachuful-backend/internal/services/gamerecord"
)

// RegisterRequest is the request body for registering a user
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// CreateGameRequest is the request body for creating a game
type CreateGameRequest struct {
	Players []gamerecord.Seat `json:"players"`
}

// UpdateStateRequest is the request body for merging a state patch.
// Absent fields are preserved, not cleared.
type UpdateStateRequest struct {
	GameState    *gamerecord.LiveStatePatch `json:"gameState"`
	CurrentRound *int                       `json:"currentRound"`
	Phase        *model.Phase               `json:"phase"`
}

// FinishGameRequest is the request body for finalizing a game.
// MayhemRounds accepts both the object and the legacy numeric encoding.
type FinishGameRequest struct {
	Rounds       int                 `json:"rounds"`
	MayhemRounds []model.MayhemRound `json:"mayhemRounds"`
}

// UpsertCardRequest is the request body for adding or updating a player card
type UpsertCardRequest struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Photo string `json:"photo,omitempty"`
}
