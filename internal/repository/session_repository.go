package repository

import (
	"context"
	"encoding/json"
	"farmbiz-service/internal/models"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionRepository handles session-related Redis operations
type SessionRepository interface {
	CreateSession(ctx context.Context, session *models.UserSession) error
	GetSession(ctx context.Context, sessionID string) (*models.UserSession, error)
	DeleteSession(ctx context.Context, sessionID string) error
	DeleteUserSessions(ctx context.Context, userID string) error
	GetUserSessions(ctx context.Context, userID string) ([]*models.UserSession, error)
}

type sessionRepository struct {
	client     *redis.Client
	expiration time.Duration
}

func NewSessionRepository(client *redis.Client, expiration time.Duration) SessionRepository {
	return &sessionRepository{
		client:     client,
		expiration: expiration,
	}
}

func (r *sessionRepository) CreateSession(ctx context.Context, session *models.UserSession) error {
	if session.ID == "" {
		return fmt.Errorf("session ID cannot be empty")
	}
	if session.UserID == "" {
		return fmt.Errorf("user ID cannot be empty")
	}

	session.ExpiresAt = time.Now().Add(r.expiration)
	session.IsActive = true

	sessionData, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	sessionKey := r.getSessionKey(session.ID)
	if err := r.client.Set(ctx, sessionKey, sessionData, r.expiration).Err(); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}

	userSessionsKey := r.getUserSessionsKey(session.UserID)
	if err := r.client.SAdd(ctx, userSessionsKey, session.ID).Err(); err != nil {
		return fmt.Errorf("failed to add session to user sessions: %w", err)
	}

	if err := r.client.Expire(ctx, userSessionsKey, r.expiration).Err(); err != nil {
		return fmt.Errorf("failed to set expiration on user sessions: %w", err)
	}

	return nil
}

func (r *sessionRepository) GetSession(ctx context.Context, sessionID string) (*models.UserSession, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("session ID cannot be empty")
	}

	sessionKey := r.getSessionKey(sessionID)
	sessionData, err := r.client.Get(ctx, sessionKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, fmt.Errorf("session not found")
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var session models.UserSession
	if err := json.Unmarshal([]byte(sessionData), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	if time.Now().After(session.ExpiresAt) {
		r.DeleteSession(ctx, sessionID)
		return nil, fmt.Errorf("session expired")
	}

	return &session, nil
}

func (r *sessionRepository) DeleteSession(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return fmt.Errorf("session ID cannot be empty")
	}

	session, err := r.GetSession(ctx, sessionID)
	if err != nil {
		// Session might already be deleted or expired, not an error
		return nil
	}

	sessionKey := r.getSessionKey(sessionID)
	if err := r.client.Del(ctx, sessionKey).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	userSessionsKey := r.getUserSessionsKey(session.UserID)
	if err := r.client.SRem(ctx, userSessionsKey, sessionID).Err(); err != nil {
		return fmt.Errorf("failed to remove session from user sessions: %w", err)
	}

	return nil
}

func (r *sessionRepository) DeleteUserSessions(ctx context.Context, userID string) error {
	if userID == "" {
		return fmt.Errorf("user ID cannot be empty")
	}

	sessions, err := r.GetUserSessions(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get user sessions: %w", err)
	}

	for _, session := range sessions {
		sessionKey := r.getSessionKey(session.ID)
		if err := r.client.Del(ctx, sessionKey).Err(); err != nil {
			return fmt.Errorf("failed to delete session %s: %w", session.ID, err)
		}
	}

	userSessionsKey := r.getUserSessionsKey(userID)
	if err := r.client.Del(ctx, userSessionsKey).Err(); err != nil {
		return fmt.Errorf("failed to delete user sessions set: %w", err)
	}

	return nil
}

func (r *sessionRepository) GetUserSessions(ctx context.Context, userID string) ([]*models.UserSession, error) {
	if userID == "" {
		return nil, fmt.Errorf("user ID cannot be empty")
	}

	userSessionsKey := r.getUserSessionsKey(userID)
	sessionIDs, err := r.client.SMembers(ctx, userSessionsKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get user session IDs: %w", err)
	}

	sessions := []*models.UserSession{}
	for _, sessionID := range sessionIDs {
		session, err := r.GetSession(ctx, sessionID)
		if err != nil {
			// Stale set member; skip it
			continue
		}
		sessions = append(sessions, session)
	}

	return sessions, nil
}

func (r *sessionRepository) getSessionKey(sessionID string) string {
	return fmt.Sprintf("session:%s", sessionID)
}

func (r *sessionRepository) getUserSessionsKey(userID string) string {
	return fmt.Sprintf("user_sessions:%s", userID)
}
