package usecases

import (
	"context"
	"time"

	"github.com/funnelworks/funnel-intelligence-api/internal/domain/entities"
	"github.com/funnelworks/funnel-intelligence-api/internal/domain/repositories"
)

type SessionUseCase struct {
	sessionRepo repositories.SessionRepository
}

func NewSessionUseCase(sessionRepo repositories.SessionRepository) *SessionUseCase {
	return &SessionUseCase{
		sessionRepo: sessionRepo,
	}
}

func (uc *SessionUseCase) GetSessions(ctx context.Context, page, limit int, orderBy string, from, to time.Time, visitorID string, hasTransaction *bool) ([]entities.Session, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if orderBy == "" {
		orderBy = "start_time desc"
	}

	return uc.sessionRepo.GetSessions(ctx, page, limit, orderBy, from, to, visitorID, hasTransaction)
}

func (uc *SessionUseCase) FindSessionByID(ctx context.Context, id string) (*entities.Session, error) {
	return uc.sessionRepo.FindSessionByID(ctx, id)
}

func (uc *SessionUseCase) GetSessionEvents(ctx context.Context, id string) ([]entities.SessionizedEvent, error) {
	return uc.sessionRepo.GetSessionEvents(ctx, id)
}

func (uc *SessionUseCase) CountSessions(ctx context.Context, from, to time.Time, hasTransaction *bool) (int64, error) {
	return uc.sessionRepo.CountSessions(ctx, from, to, hasTransaction)
}
