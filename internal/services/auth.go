package services

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"lucky-seven-backend/internal/models"
)

// UserRepository is the credential-store boundary the auth flow depends on.
// *UserStore satisfies it.
type UserRepository interface {
	CreateUser(username, passwordHash string) error
	GetUser(username string) (*models.User, error)
	UpdateRefreshToken(username string, token *string) error
}

type AuthService struct {
	users UserRepository
	jwt   *JWTService
}

// TokenPair is one access/refresh issuance. The refresh token is also
// persisted against the user row so a rotated token can be revoked by
// mismatch.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

func NewAuthService(users UserRepository, jwt *JWTService) *AuthService {
	return &AuthService{
		users: users,
		jwt:   jwt,
	}
}

// Signup registers a user and logs them straight in.
func (s *AuthService) Signup(username, password string) (*TokenPair, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	if err := s.users.CreateUser(username, string(hash)); err != nil {
		return nil, err
	}

	return s.issueTokens(username)
}

// Login verifies credentials. A missing user and a wrong password are
// indistinguishable to the caller.
func (s *AuthService) Login(username, password string) (*TokenPair, error) {
	user, err := s.users.GetUser(username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issueTokens(username)
}

// VerifyRefreshToken checks a refresh token's signature and expiry, then
// requires exact equality with the token stored on the user row. Any
// mismatch, including a previously rotated token, is rejected.
func (s *AuthService) VerifyRefreshToken(token string) (string, error) {
	claims, err := s.jwt.ValidateRefreshToken(token)
	if err != nil {
		return "", err
	}

	user, err := s.users.GetUser(claims.Username)
	if err != nil {
		return "", err
	}
	if user == nil || user.RefreshToken == nil || *user.RefreshToken != token {
		return "", ErrInvalidToken
	}

	return claims.Username, nil
}

// Logout clears the stored refresh token for the user named in the given
// (already verified) refresh token.
func (s *AuthService) Logout(token string) error {
	username, err := s.VerifyRefreshToken(token)
	if err != nil {
		return err
	}

	if err := s.users.UpdateRefreshToken(username, nil); err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			return ErrInvalidToken
		}
		return err
	}
	return nil
}

// RefreshAccessToken mints a new access token against a valid refresh
// token; the refresh token itself is left unchanged.
func (s *AuthService) RefreshAccessToken(token string) (string, error) {
	username, err := s.VerifyRefreshToken(token)
	if err != nil {
		return "", err
	}
	return s.jwt.GenerateAccessToken(username)
}

func (s *AuthService) issueTokens(username string) (*TokenPair, error) {
	accessToken, err := s.jwt.GenerateAccessToken(username)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.jwt.GenerateRefreshToken(username)
	if err != nil {
		return nil, err
	}

	if err := s.users.UpdateRefreshToken(username, &refreshToken); err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
