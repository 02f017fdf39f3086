package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"lucky-seven-backend/internal/config"
	"lucky-seven-backend/internal/models"
)

// RedisSessionStore keeps game sessions as JSON blobs keyed by session ID,
// with a set index for listing. Sessions are ephemeral: they live until an
// explicit clear, not past process storage lifetime.
type RedisSessionStore struct {
	client *redis.Client
	ctx    context.Context
}

func NewRedisSessionStore(cfg *config.Config) (*RedisSessionStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisURL,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})

	ctx := context.Background()

	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %v", err)
	}

	return &RedisSessionStore{
		client: client,
		ctx:    ctx,
	}, nil
}

func (s *RedisSessionStore) CreateSession(session *models.Session) error {
	return s.write(session)
}

func (s *RedisSessionStore) UpdateSession(session *models.Session) error {
	return s.write(session)
}

func (s *RedisSessionStore) write(session *models.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %v", err)
	}

	key := fmt.Sprintf(KeyGameSession, session.SessionID)

	tx := s.client.TxPipeline()
	tx.Set(s.ctx, key, data, 0)
	tx.SAdd(s.ctx, KeySessionIndex, session.SessionID)
	if _, err := tx.Exec(s.ctx); err != nil {
		return fmt.Errorf("failed to save session: %v", err)
	}

	return nil
}

func (s *RedisSessionStore) GetSession(sessionID string) (*models.Session, error) {
	key := fmt.Sprintf(KeyGameSession, sessionID)

	data, err := s.client.Get(s.ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session: %v", err)
	}

	var session models.Session
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %v", err)
	}

	return &session, nil
}

// DeleteSession is idempotent: deleting an absent session is not an error.
func (s *RedisSessionStore) DeleteSession(sessionID string) error {
	key := fmt.Sprintf(KeyGameSession, sessionID)

	tx := s.client.TxPipeline()
	tx.Del(s.ctx, key)
	tx.SRem(s.ctx, KeySessionIndex, sessionID)
	if _, err := tx.Exec(s.ctx); err != nil {
		return fmt.Errorf("failed to delete session: %v", err)
	}

	return nil
}

func (s *RedisSessionStore) ListSessions() ([]*models.Session, error) {
	sessionIDs, err := s.client.SMembers(s.ctx, KeySessionIndex).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %v", err)
	}

	if len(sessionIDs) == 0 {
		return []*models.Session{}, nil
	}

	pipe := s.client.Pipeline()
	cmds := make([]*redis.StringCmd, len(sessionIDs))
	for i, sessionID := range sessionIDs {
		cmds[i] = pipe.Get(s.ctx, fmt.Sprintf(KeyGameSession, sessionID))
	}

	if _, err := pipe.Exec(s.ctx); err != nil && err != redis.Nil {
		return nil, fmt.Errorf("pipeline execution failed: %v", err)
	}

	sessions := make([]*models.Session, 0, len(sessionIDs))
	for _, cmd := range cmds {
		data, err := cmd.Result()
		if err != nil {
			// Index entries without a backing blob are stale; skip them.
			continue
		}

		var session models.Session
		if err := json.Unmarshal([]byte(data), &session); err != nil {
			continue
		}

		sessions = append(sessions, &session)
	}

	return sessions, nil
}

func (s *RedisSessionStore) DeleteAllSessions() error {
	sessionIDs, err := s.client.SMembers(s.ctx, KeySessionIndex).Result()
	if err != nil {
		return fmt.Errorf("failed to list sessions: %v", err)
	}

	tx := s.client.TxPipeline()
	for _, sessionID := range sessionIDs {
		tx.Del(s.ctx, fmt.Sprintf(KeyGameSession, sessionID))
	}
	tx.Del(s.ctx, KeySessionIndex)
	if _, err := tx.Exec(s.ctx); err != nil {
		return fmt.Errorf("failed to clear sessions: %v", err)
	}

	return nil
}

func (s *RedisSessionStore) Close() error {
	return s.client.Close()
}
