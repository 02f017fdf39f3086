package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"lucky-seven-backend/internal/models"
	"lucky-seven-backend/internal/services"
)

type GameHandler struct {
	gameEngine *services.GameEngine
}

func NewGameHandler(gameEngine *services.GameEngine) *GameHandler {
	return &GameHandler{gameEngine: gameEngine}
}

func (h *GameHandler) Start(c *gin.Context) {
	var req models.StartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, validationFailure(err))
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, validationFailure(err))
		return
	}

	sessionID, err := h.gameEngine.CreateSession(req.GameState, req.History)
	if err != nil {
		log.Printf("create session failed: %v", err)
		c.JSON(http.StatusForbidden, failure("Error creating Session"))
		return
	}

	c.JSON(http.StatusOK, success(gin.H{"sessionId": sessionID}))
}

func (h *GameHandler) GetSession(c *gin.Context) {
	sessionID := c.Param("sessionId")

	session, err := h.gameEngine.FetchSession(sessionID)
	if err != nil {
		log.Printf("fetch session %s failed: %v", sessionID, err)
		c.JSON(http.StatusForbidden, failure("Session not found"))
		return
	}

	c.JSON(http.StatusOK, success(gin.H{"session": session}))
}

func (h *GameHandler) ClearSession(c *gin.Context) {
	sessionID := c.Param("sessionId")

	if err := h.gameEngine.ClearSession(sessionID); err != nil {
		log.Printf("clear session %s failed: %v", sessionID, err)
		c.JSON(http.StatusForbidden, failure("Could not clear Session"))
		return
	}

	c.JSON(http.StatusOK, successMessage("Session cleared"))
}

func (h *GameHandler) ListSessions(c *gin.Context) {
	sessions, err := h.gameEngine.ListSessions()
	if err != nil {
		log.Printf("list sessions failed: %v", err)
		c.JSON(http.StatusForbidden, failure("Session not found"))
		return
	}

	c.JSON(http.StatusOK, success(gin.H{"sessions": sessions}))
}

func (h *GameHandler) ClearAllSessions(c *gin.Context) {
	if err := h.gameEngine.ClearAllSessions(); err != nil {
		log.Printf("clear all sessions failed: %v", err)
		c.JSON(http.StatusForbidden, failure("Failed to clear Sessions"))
		return
	}

	c.JSON(http.StatusOK, successMessage("Sessions cleared"))
}

func (h *GameHandler) Roll(c *gin.Context) {
	sessionID := c.Param("sessionId")

	var req models.RollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, validationFailure(err))
		return
	}

	result, err := h.gameEngine.SettleRoll(sessionID, req.Bet, req.Stake)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSessionNotFound):
			c.JSON(http.StatusBadRequest, failure("Session not found"))
		case errors.Is(err, services.ErrInvalidWager):
			c.JSON(http.StatusInternalServerError, failure("Bet Lower"))
		case errors.Is(err, services.ErrGameOver):
			c.JSON(http.StatusInternalServerError, failure("Game over"))
		case errors.Is(err, services.ErrSessionFetch):
			log.Printf("roll on session %s failed: %v", sessionID, err)
			c.JSON(http.StatusInternalServerError, failure("Error fetching Session"))
		default:
			log.Printf("roll on session %s failed: %v", sessionID, err)
			c.JSON(http.StatusInternalServerError, failure("Error updating state"))
		}
		return
	}

	c.JSON(http.StatusOK, success(gin.H{
		"gameState": result.GameState,
		"history":   result.History,
	}))
}
