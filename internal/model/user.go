package model

import "time"

// UserID uniquely identifies a user account
type UserID string

// PlayerCard is a persistent player identity owned by a user account.
// Statistics for a card are never stored; they are derived on demand from
// the owner's finished game records.
type PlayerCard struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Photo string `json:"photo,omitempty"`
}

// User owns player cards and holds references (IDs only) to finished games.
// The password hash is part of the persisted document; API responses go
// through response.UserView, which omits it.
type User struct {
	ID           UserID       `json:"id"`
	Username     string       `json:"username"`
	PasswordHash string       `json:"passwordHash"`
	PlayerCards  []PlayerCard `json:"playerCards"`
	Games        []GameID     `json:"games"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// FindCard returns the user's card with the given id, or nil
func (u *User) FindCard(cardID string) *PlayerCard {
	for i := range u.PlayerCards {
		if u.PlayerCards[i].ID == cardID {
			return &u.PlayerCards[i]
		}
	}
	return nil
}

// HasGame reports whether the user's finished-game references include id
func (u *User) HasGame(id GameID) bool {
	for _, g := range u.Games {
		if g == id {
			return true
		}
	}
	return false
}
