package usecases

import (
	"context"
	"time"

	"github.com/funnelworks/funnel-intelligence-api/internal/domain/entities"
	"github.com/funnelworks/funnel-intelligence-api/internal/domain/repositories"
)

type FunnelUseCase interface {
	GetSessionFunnels(ctx context.Context, page, limit int, orderBy string, from, to time.Time, validFunnel *bool, invalidReason string) ([]entities.SessionFunnel, int64, error)
	FindBySessionID(ctx context.Context, sessionID string) (*entities.SessionFunnel, error)
}

type funnelUseCase struct {
	funnelRepo repositories.SessionFunnelRepository
}

func NewFunnelUseCase(funnelRepo repositories.SessionFunnelRepository) FunnelUseCase {
	return &funnelUseCase{funnelRepo}
}

func (uc *funnelUseCase) GetSessionFunnels(ctx context.Context, page, limit int, orderBy string, from, to time.Time, validFunnel *bool, invalidReason string) ([]entities.SessionFunnel, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if orderBy == "" {
		orderBy = "start_time desc"
	}

	return uc.funnelRepo.GetSessionFunnels(ctx, page, limit, orderBy, from, to, validFunnel, invalidReason)
}

func (uc *funnelUseCase) FindBySessionID(ctx context.Context, sessionID string) (*entities.SessionFunnel, error) {
	return uc.funnelRepo.FindBySessionID(ctx, sessionID)
}
