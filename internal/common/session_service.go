package common

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"ekklesia/registry/internal/constants"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const sessionTTL = 7 * 24 * time.Hour

// SessionData is one signed-in leader or admin session.
type SessionData struct {
	SessionID string            `json:"session_id"`
	MemberID  string            `json:"member_id"`
	BranchID  string            `json:"branch_id"`
	Role      constants.AppRole `json:"role"`
	Name      string            `json:"name"`
	CreatedAt time.Time         `json:"created_at"`
	ExpiresAt time.Time         `json:"expires_at"`
}

// SessionService manages sessions in Redis
type SessionService struct {
	redis *redis.Client
}

func NewSessionService(redis *redis.Client) *SessionService {
	return &SessionService{
		redis: redis,
	}
}

// CreateSession stores a new session and returns its id.
func (s *SessionService) CreateSession(ctx context.Context, memberID, branchID, name string, role constants.AppRole) (string, error) {
	sessionID := uuid.New().String()

	now := time.Now()
	session := SessionData{
		SessionID: sessionID,
		MemberID:  memberID,
		BranchID:  branchID,
		Role:      role,
		Name:      name,
		CreatedAt: now,
		ExpiresAt: now.Add(sessionTTL),
	}

	data, err := json.Marshal(session)
	if err != nil {
		return "", fmt.Errorf("failed to marshal session: %w", err)
	}

	err = s.redis.Set(ctx, "session:"+sessionID, data, sessionTTL).Err()
	if err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}

	return sessionID, nil
}

// GetSession retrieves a session from Redis
func (s *SessionService) GetSession(ctx context.Context, sessionID string) (*SessionData, error) {
	val, err := s.redis.Get(ctx, "session:"+sessionID).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.New("session not found")
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var session SessionData
	if err := json.Unmarshal([]byte(val), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	if time.Now().After(session.ExpiresAt) {
		s.DeleteSession(ctx, sessionID)
		return nil, errors.New("session expired")
	}

	return &session, nil
}

// DeleteSession deletes a session from Redis
func (s *SessionService) DeleteSession(ctx context.Context, sessionID string) error {
	err := s.redis.Del(ctx, "session:"+sessionID).Err()
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// RefreshSession extends the session expiration
func (s *SessionService) RefreshSession(ctx context.Context, sessionID string) error {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return err
	}

	session.ExpiresAt = time.Now().Add(sessionTTL)

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	err = s.redis.Set(ctx, "session:"+sessionID, data, sessionTTL).Err()
	if err != nil {
		return fmt.Errorf("failed to refresh session: %w", err)
	}

	return nil
}
