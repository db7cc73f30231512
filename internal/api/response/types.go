package response

import (
	"time"

	"github.com/kunalgolani-work/kachuful-backend/internal/model"
)

// Game records and stats reports are serialized straight from their model
// and service types: the persisted document shape is the wire shape, which
// is what keeps legacy clients readable. Users are the exception, since the
// persisted document carries the password hash.

// UserView is the wire shape of a user account, without the password hash.
type UserView struct {
	ID          model.UserID       `json:"id"`
	Username    string             `json:"username"`
	PlayerCards []model.PlayerCard `json:"playerCards"`
	Games       []model.GameID     `json:"games"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

func NewUserView(user *model.User) *UserView {
	return &UserView{
		ID:          user.ID,
		Username:    user.Username,
		PlayerCards: user.PlayerCards,
		Games:       user.Games,
		CreatedAt:   user.CreatedAt,
		UpdatedAt:   user.UpdatedAt,
	}
}

// AuthResponse is the response for register and login
type AuthResponse struct {
	User  *UserView `json:"user"`
	Token string    `json:"token"`
}

// FinishResponse is the response for finalizing a game
type FinishResponse struct {
	Message string            `json:"message"`
	Game    *model.GameRecord `json:"game"`
}

// HealthResponse is the response for the health endpoint
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}
