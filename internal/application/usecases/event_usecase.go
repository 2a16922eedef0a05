package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/funnelworks/funnel-intelligence-api/internal/domain/entities"
	"github.com/funnelworks/funnel-intelligence-api/internal/domain/repositories"
)

type EventUseCase interface {
	GetEvents(ctx context.Context, page, limit int, orderBy string, from, to time.Time, eventType string) ([]entities.Event, int64, error)
	TrackEvents(ctx context.Context, events []entities.Event) (int, error)
}

type eventUseCase struct {
	eventRepo repositories.EventRepository
}

func NewEventUseCase(eventRepo repositories.EventRepository) EventUseCase {
	return &eventUseCase{eventRepo}
}

func (uc *eventUseCase) GetEvents(ctx context.Context, page, limit int, orderBy string, from, to time.Time, eventType string) ([]entities.Event, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if orderBy == "" {
		orderBy = "event_time desc"
	}

	return uc.eventRepo.GetEvents(ctx, page, limit, orderBy, from, to, eventType)
}

// TrackEvents ingere um lote de eventos brutos. O event_type precisa ser
// um dos tipos reconhecidos; campos obrigatórios ausentes são aceitos
// (viram rejeitados na sessionização), tipo desconhecido não.
func (uc *eventUseCase) TrackEvents(ctx context.Context, events []entities.Event) (int, error) {
	if len(events) == 0 {
		return 0, nil
	}
	for i, event := range events {
		if !entities.IsKnownEventType(event.EventType) {
			return 0, fmt.Errorf("event_type desconhecido no evento %d: %q", i, event.EventType)
		}
	}
	if err := uc.eventRepo.CreateBatch(ctx, events); err != nil {
		return 0, err
	}
	return len(events), nil
}
