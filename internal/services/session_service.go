package services

import (
	"context"
	"farmbiz-service/internal/models"
	"farmbiz-service/internal/repository"

	"github.com/google/uuid"
)

type SessionService struct {
	sessionRepo repository.SessionRepository
}

func NewSessionService(sessionRepo repository.SessionRepository) *SessionService {
	return &SessionService{sessionRepo: sessionRepo}
}

func (s *SessionService) CreateSession(ctx context.Context, userID string, deviceInfo, ipAddress *string) (*models.UserSession, error) {
	session := &models.UserSession{
		ID:         uuid.New().String(),
		UserID:     userID,
		DeviceInfo: deviceInfo,
		IPAddress:  ipAddress,
	}
	if err := s.sessionRepo.CreateSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *SessionService) GetSession(ctx context.Context, sessionID string) (*models.UserSession, error) {
	return s.sessionRepo.GetSession(ctx, sessionID)
}

// InvalidateUserSessions drops every session the user holds. Issued tokens
// stay valid until expiry; only the session state is revoked.
func (s *SessionService) InvalidateUserSessions(ctx context.Context, userID string) error {
	return s.sessionRepo.DeleteUserSessions(ctx, userID)
}

func (s *SessionService) GetUserSessions(ctx context.Context, userID string) ([]*models.UserSession, error) {
	return s.sessionRepo.GetUserSessions(ctx, userID)
}
