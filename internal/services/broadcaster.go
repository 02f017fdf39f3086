package services

import "lucky-seven-backend/internal/models"

type Broadcaster interface {
	BroadcastRollSettled(sessionID string, state models.GameState)
	BroadcastSessionCleared(sessionID string)
}
