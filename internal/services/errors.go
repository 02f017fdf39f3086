package services

import "errors"

var (
	// Game engine errors.
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionFetch    = errors.New("failed to fetch session")
	ErrInvalidWager    = errors.New("stake exceeds remaining chips")
	ErrGameOver        = errors.New("game over")

	// Auth flow errors.
	ErrDuplicateUser        = errors.New("user already exists")
	ErrInvalidCredentials   = errors.New("invalid username or password")
	ErrInvalidToken         = errors.New("invalid or expired token")
	ErrTokenMalformed       = errors.New("token payload missing username")
	ErrAlreadyAuthenticated = errors.New("already authenticated")
)
