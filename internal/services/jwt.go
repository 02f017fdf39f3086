package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"lucky-seven-backend/internal/config"
)

type JWTService struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

type TokenClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

func NewJWTService(cfg *config.Config) *JWTService {
	return &JWTService{
		accessSecret:  []byte(cfg.AccessTokenSecret),
		refreshSecret: []byte(cfg.RefreshTokenSecret),
		accessTTL:     cfg.AccessTokenTTL,
		refreshTTL:    cfg.RefreshTokenTTL,
	}
}

func (s *JWTService) GenerateAccessToken(username string) (string, error) {
	return sign(username, s.accessSecret, s.accessTTL)
}

func (s *JWTService) GenerateRefreshToken(username string) (string, error) {
	return sign(username, s.refreshSecret, s.refreshTTL)
}

func (s *JWTService) RefreshTokenTTL() time.Duration {
	return s.refreshTTL
}

func (s *JWTService) ValidateAccessToken(token string) (*TokenClaims, error) {
	return validate(token, s.accessSecret)
}

func (s *JWTService) ValidateRefreshToken(token string) (*TokenClaims, error) {
	return validate(token, s.refreshSecret)
}

func sign(username string, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := TokenClaims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func validate(token string, secret []byte) (*TokenClaims, error) {
	claims := &TokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, errors.Join(ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Username == "" {
		return nil, ErrTokenMalformed
	}
	return claims, nil
}
