package services

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"lucky-seven-backend/internal/models"
)

// UserStore is the credential store backed by an embedded SQLite database.
type UserStore struct {
	db *sql.DB
}

func NewUserStore(path string) (*UserStore, error) {
	if path == "" {
		return nil, fmt.Errorf("database path is empty")
	}

	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("ensure db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(`PRAGMA busy_timeout = 5000;`); err != nil {
		db.Close()
		return nil, fmt.Errorf("configure sqlite: %w", err)
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &UserStore{db: db}, nil
}

func initSchema(db *sql.DB) error {
	schema := `CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL,
		refresh_token TEXT
	);`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// CreateUser inserts a user with an already-hashed password. Returns
// ErrDuplicateUser when the username is taken.
func (s *UserStore) CreateUser(username, passwordHash string) error {
	_, err := s.db.Exec(
		`INSERT INTO users (username, password) VALUES (?, ?)`,
		username, passwordHash,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return ErrDuplicateUser
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetUser fetches a user by username; returns (nil, nil) when absent so
// callers can decide how much to reveal about missing users.
func (s *UserStore) GetUser(username string) (*models.User, error) {
	row := s.db.QueryRow(
		`SELECT id, username, password, refresh_token FROM users WHERE username = ?`,
		username,
	)

	var user models.User
	var refreshToken sql.NullString
	if err := row.Scan(&user.ID, &user.Username, &user.Password, &refreshToken); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("fetch user: %w", err)
	}

	if refreshToken.Valid {
		user.RefreshToken = &refreshToken.String
	}
	return &user, nil
}

// UpdateRefreshToken overwrites the stored refresh token; nil clears it.
func (s *UserStore) UpdateRefreshToken(username string, token *string) error {
	var value sql.NullString
	if token != nil {
		value = sql.NullString{String: *token, Valid: true}
	}

	res, err := s.db.Exec(
		`UPDATE users SET refresh_token = ? WHERE username = ?`,
		value, username,
	)
	if err != nil {
		return fmt.Errorf("update refresh token: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update refresh token: %w", err)
	}
	if affected == 0 {
		return ErrInvalidCredentials
	}
	return nil
}

func (s *UserStore) Close() error {
	return s.db.Close()
}
