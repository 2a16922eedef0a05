package repositories

import (
	"context"
	"time"

	"github.com/funnelworks/funnel-intelligence-api/internal/domain/entities"
	"gorm.io/gorm"
)

// EventRepository abstrai a fonte de eventos brutos. A implementação
// padrão usa Postgres via GORM; há uma alternativa sobre ClickHouse em
// infrastructure/repository para clickstreams de alto volume.
type EventRepository interface {
	GetEvents(ctx context.Context, page, limit int, orderBy string, from, to time.Time, eventType string) ([]entities.Event, int64, error)
	// FetchAllOrdered retorna todos os eventos ordenados por
	// (visitor_id, event_time, ingestion_id), a ordem que a
	// sessionização espera
	FetchAllOrdered(ctx context.Context) ([]entities.Event, error)
	CreateBatch(ctx context.Context, events []entities.Event) error
}

type eventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db}
}

func (r *eventRepository) GetEvents(ctx context.Context, page, limit int, orderBy string, from, to time.Time, eventType string) ([]entities.Event, int64, error) {
	var events []entities.Event
	var total int64

	query := r.db.WithContext(ctx).Model(&entities.Event{})

	if !from.IsZero() {
		query = query.Where("event_time >= ?", from.UTC())
	}
	if !to.IsZero() {
		query = query.Where("event_time <= ?", to.UTC())
	}
	if eventType != "" {
		query = query.Where("event_type = ?", eventType)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	result := query.Order(orderBy).Offset(offset).Limit(limit).Find(&events)
	if result.Error != nil {
		return nil, 0, result.Error
	}

	return events, total, nil
}

func (r *eventRepository) FetchAllOrdered(ctx context.Context) ([]entities.Event, error) {
	var events []entities.Event
	result := r.db.WithContext(ctx).
		Model(&entities.Event{}).
		Order("visitor_id, event_time, ingestion_id").
		Find(&events)
	if result.Error != nil {
		return nil, result.Error
	}
	return events, nil
}

func (r *eventRepository) CreateBatch(ctx context.Context, events []entities.Event) error {
	if len(events) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(events, 1000).Error
}
