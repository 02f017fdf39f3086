package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"lucky-seven-backend/internal/middleware"
	"lucky-seven-backend/internal/models"
	"lucky-seven-backend/internal/services"
)

type AuthHandler struct {
	authService     *services.AuthService
	refreshTokenTTL int // cookie max age in seconds
}

func NewAuthHandler(authService *services.AuthService, jwtService *services.JWTService) *AuthHandler {
	return &AuthHandler{
		authService:     authService,
		refreshTokenTTL: int(jwtService.RefreshTokenTTL().Seconds()),
	}
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req models.CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, validationFailure(err))
		return
	}

	pair, err := h.authService.Signup(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrDuplicateUser) {
			c.JSON(http.StatusBadRequest, failure("User already exist"))
			return
		}
		log.Printf("signup failed: %v", err)
		c.JSON(http.StatusInternalServerError, failure("Internal Server Error"))
		return
	}

	h.sendTokens(c, pair)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req models.CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, validationFailure(err))
		return
	}

	pair, err := h.authService.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(http.StatusBadRequest, failure("User not found"))
			return
		}
		log.Printf("login failed: %v", err)
		c.JSON(http.StatusInternalServerError, failure("Internal Server Error"))
		return
	}

	h.sendTokens(c, pair)
}

// Logout runs behind RequireRefreshToken; the cookie is present and already
// verified against the stored token.
func (h *AuthHandler) Logout(c *gin.Context) {
	token, _ := c.Cookie(middleware.RefreshCookieName)

	if err := h.authService.Logout(token); err != nil {
		if errors.Is(err, services.ErrInvalidToken) || errors.Is(err, services.ErrTokenMalformed) {
			c.JSON(http.StatusForbidden, failure("Invalid token received"))
			return
		}
		log.Printf("logout failed: %v", err)
		c.JSON(http.StatusInternalServerError, failure("Internal Server Error"))
		return
	}

	h.clearRefreshCookie(c)
	c.JSON(http.StatusOK, successMessage("Logged out"))
}

func (h *AuthHandler) AccessToken(c *gin.Context) {
	token, _ := c.Cookie(middleware.RefreshCookieName)

	accessToken, err := h.authService.RefreshAccessToken(token)
	if err != nil {
		if errors.Is(err, services.ErrInvalidToken) || errors.Is(err, services.ErrTokenMalformed) {
			c.JSON(http.StatusForbidden, failure("Invalid token received"))
			return
		}
		log.Printf("token refresh failed: %v", err)
		c.JSON(http.StatusInternalServerError, failure("Internal Server Error"))
		return
	}

	c.JSON(http.StatusOK, success(gin.H{"accessToken": accessToken}))
}

func (h *AuthHandler) sendTokens(c *gin.Context, pair *services.TokenPair) {
	c.SetCookie(middleware.RefreshCookieName, pair.RefreshToken,
		h.refreshTokenTTL, "/", "", false, true)
	c.JSON(http.StatusOK, success(gin.H{"accessToken": pair.AccessToken}))
}

func (h *AuthHandler) clearRefreshCookie(c *gin.Context) {
	c.SetCookie(middleware.RefreshCookieName, "", -1, "/", "", false, true)
}
