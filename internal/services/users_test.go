package services_test

import (
	"errors"
	"testing"

	"lucky-seven-backend/internal/services"
)

func TestUserStore(t *testing.T) {
	store, err := services.NewUserStore(":memory:")
	if err != nil {
		t.Fatalf("Failed to open user store: %v", err)
	}
	defer store.Close()

	if err := store.CreateUser("alice", "hashed-password"); err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}

	if err := store.CreateUser("alice", "another-hash"); !errors.Is(err, services.ErrDuplicateUser) {
		t.Errorf("Expected ErrDuplicateUser, got %v", err)
	}

	user, err := store.GetUser("alice")
	if err != nil {
		t.Fatalf("Failed to fetch user: %v", err)
	}
	if user == nil {
		t.Fatal("Expected user, got nil")
	}
	if user.Username != "alice" || user.Password != "hashed-password" {
		t.Errorf("Unexpected user row: %+v", user)
	}
	if user.RefreshToken != nil {
		t.Error("Fresh user should have no refresh token")
	}

	missing, err := store.GetUser("nobody")
	if err != nil {
		t.Fatalf("Unexpected error for missing user: %v", err)
	}
	if missing != nil {
		t.Error("Missing user should be nil, not an error")
	}

	token := "some-refresh-token"
	if err := store.UpdateRefreshToken("alice", &token); err != nil {
		t.Fatalf("Failed to set refresh token: %v", err)
	}

	user, err = store.GetUser("alice")
	if err != nil {
		t.Fatalf("Failed to fetch user: %v", err)
	}
	if user.RefreshToken == nil || *user.RefreshToken != token {
		t.Error("Refresh token should round-trip through the store")
	}

	if err := store.UpdateRefreshToken("alice", nil); err != nil {
		t.Fatalf("Failed to clear refresh token: %v", err)
	}

	user, err = store.GetUser("alice")
	if err != nil {
		t.Fatalf("Failed to fetch user: %v", err)
	}
	if user.RefreshToken != nil {
		t.Error("Cleared refresh token should read back as nil")
	}

	if err := store.UpdateRefreshToken("nobody", &token); !errors.Is(err, services.ErrInvalidCredentials) {
		t.Errorf("Expected ErrInvalidCredentials for unknown user, got %v", err)
	}
}
