package services_test

import (
	"errors"
	"testing"
	"time"

	"lucky-seven-backend/internal/config"
	"lucky-seven-backend/internal/services"
)

func testJWTService(accessTTL, refreshTTL time.Duration) *services.JWTService {
	return services.NewJWTService(&config.Config{
		AccessTokenSecret:  "access-secret-for-tests",
		RefreshTokenSecret: "refresh-secret-for-tests",
		AccessTokenTTL:     accessTTL,
		RefreshTokenTTL:    refreshTTL,
	})
}

func TestTokenRoundTrip(t *testing.T) {
	jwtService := testJWTService(15*time.Minute, 7*24*time.Hour)

	accessToken, err := jwtService.GenerateAccessToken("alice")
	if err != nil {
		t.Fatalf("Failed to generate access token: %v", err)
	}

	claims, err := jwtService.ValidateAccessToken(accessToken)
	if err != nil {
		t.Fatalf("Failed to validate access token: %v", err)
	}
	if claims.Username != "alice" {
		t.Errorf("Expected username alice, got %q", claims.Username)
	}

	refreshToken, err := jwtService.GenerateRefreshToken("alice")
	if err != nil {
		t.Fatalf("Failed to generate refresh token: %v", err)
	}

	claims, err = jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		t.Fatalf("Failed to validate refresh token: %v", err)
	}
	if claims.Username != "alice" {
		t.Errorf("Expected username alice, got %q", claims.Username)
	}
}

func TestTokenSecretsAreDistinct(t *testing.T) {
	jwtService := testJWTService(15*time.Minute, 7*24*time.Hour)

	accessToken, err := jwtService.GenerateAccessToken("alice")
	if err != nil {
		t.Fatalf("Failed to generate access token: %v", err)
	}

	// An access token must not verify as a refresh token, and vice versa.
	if _, err := jwtService.ValidateRefreshToken(accessToken); !errors.Is(err, services.ErrInvalidToken) {
		t.Errorf("Access token accepted as refresh token: %v", err)
	}

	refreshToken, err := jwtService.GenerateRefreshToken("alice")
	if err != nil {
		t.Fatalf("Failed to generate refresh token: %v", err)
	}

	if _, err := jwtService.ValidateAccessToken(refreshToken); !errors.Is(err, services.ErrInvalidToken) {
		t.Errorf("Refresh token accepted as access token: %v", err)
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	jwtService := testJWTService(-time.Minute, -time.Minute)

	accessToken, err := jwtService.GenerateAccessToken("alice")
	if err != nil {
		t.Fatalf("Failed to generate access token: %v", err)
	}

	if _, err := jwtService.ValidateAccessToken(accessToken); !errors.Is(err, services.ErrInvalidToken) {
		t.Errorf("Expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestTokenWithoutUsernameRejected(t *testing.T) {
	jwtService := testJWTService(15*time.Minute, 7*24*time.Hour)

	token, err := jwtService.GenerateAccessToken("")
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}

	if _, err := jwtService.ValidateAccessToken(token); !errors.Is(err, services.ErrTokenMalformed) {
		t.Errorf("Expected ErrTokenMalformed, got %v", err)
	}
}

func TestGarbageTokenRejected(t *testing.T) {
	jwtService := testJWTService(15*time.Minute, 7*24*time.Hour)

	if _, err := jwtService.ValidateAccessToken("not.a.token"); !errors.Is(err, services.ErrInvalidToken) {
		t.Errorf("Expected ErrInvalidToken, got %v", err)
	}
}
