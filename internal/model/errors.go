package model

import "errors"

// Common errors used across the application
var (
	// User errors
	ErrUserNotFound   = errors.New("user not found")
	ErrUsernameExists = errors.New("username already exists")

	// Game record errors
	ErrGameNotFound = errors.New("game not found")
	ErrNoPlayers    = errors.New("game requires at least one player")

	// Player card errors
	ErrCardNotFound = errors.New("player card not found")
)
