package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"lucky-seven-backend/internal/services"
)

const (
	// ContextUsername is the gin context key carrying the authenticated user.
	ContextUsername = "username"

	// RefreshCookieName is the http-only cookie holding the refresh token.
	RefreshCookieName = "jwt"
)

func fail(message string) gin.H {
	return gin.H{"success": false, "message": message}
}

// RequireAccessToken guards the game API with a bearer access token.
func RequireAccessToken(jwtService *services.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenString string

		if authHeader := c.GetHeader("Authorization"); authHeader != "" {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				c.AbortWithStatusJSON(http.StatusBadRequest, fail("Token not found"))
				return
			}
			tokenString = parts[1]
		} else {
			// Browsers cannot set headers on websocket connects, so the
			// live feed passes the access token as a query parameter.
			tokenString = c.Query("token")
			if tokenString == "" {
				c.AbortWithStatusJSON(http.StatusBadRequest, fail("Token not found"))
				return
			}
		}

		claims, err := jwtService.ValidateAccessToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, fail("Invalid token received"))
			return
		}

		c.Set(ContextUsername, claims.Username)
		c.Next()
	}
}

// RequireRefreshToken guards logout/refresh with the cookie-borne refresh
// token, including the stored-token equality check.
func RequireRefreshToken(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(RefreshCookieName)
		if err != nil || token == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, fail("Token not received"))
			return
		}

		username, err := authService.VerifyRefreshToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, fail("Invalid token received"))
			return
		}

		c.Set(ContextUsername, username)
		c.Next()
	}
}

// BlockIfAuthenticated rejects login/signup attempts that already carry a
// bearer token; re-authentication requires an explicit logout first.
func BlockIfAuthenticated() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") != "" {
			c.AbortWithStatusJSON(http.StatusForbidden,
				fail("User can't perform this operation while logged in"))
			return
		}
		c.Next()
	}
}
