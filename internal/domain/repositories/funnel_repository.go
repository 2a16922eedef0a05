package repositories

import (
	"context"
	"time"

	"github.com/funnelworks/funnel-intelligence-api/internal/domain/entities"
	"gorm.io/gorm"
)

type SessionFunnelRepository interface {
	GetSessionFunnels(ctx context.Context, page, limit int, orderBy string, from, to time.Time, validFunnel *bool, invalidReason string) ([]entities.SessionFunnel, int64, error)
	FindBySessionID(ctx context.Context, sessionID string) (*entities.SessionFunnel, error)
	FetchAll(ctx context.Context, from, to time.Time) ([]entities.SessionFunnel, error)
	ReplaceAll(ctx context.Context, funnels []entities.SessionFunnel) error
}

type sessionFunnelRepository struct {
	db *gorm.DB
}

func NewSessionFunnelRepository(db *gorm.DB) SessionFunnelRepository {
	return &sessionFunnelRepository{db}
}

func (r *sessionFunnelRepository) GetSessionFunnels(ctx context.Context, page, limit int, orderBy string, from, to time.Time, validFunnel *bool, invalidReason string) ([]entities.SessionFunnel, int64, error) {
	var funnels []entities.SessionFunnel
	var total int64

	query := r.db.WithContext(ctx).Model(&entities.SessionFunnel{})
	query = applyFunnelFilters(query, from, to, validFunnel, invalidReason)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	result := query.Order(orderBy).Offset(offset).Limit(limit).Find(&funnels)
	if result.Error != nil {
		return nil, 0, result.Error
	}

	return funnels, total, nil
}

func (r *sessionFunnelRepository) FindBySessionID(ctx context.Context, sessionID string) (*entities.SessionFunnel, error) {
	var funnel entities.SessionFunnel
	result := r.db.WithContext(ctx).Where("session_id = ?", sessionID).First(&funnel)
	if result.Error != nil {
		return nil, result.Error
	}
	return &funnel, nil
}

func (r *sessionFunnelRepository) FetchAll(ctx context.Context, from, to time.Time) ([]entities.SessionFunnel, error) {
	var funnels []entities.SessionFunnel
	query := r.db.WithContext(ctx).Model(&entities.SessionFunnel{})
	query = applyFunnelFilters(query, from, to, nil, "")
	if err := query.Find(&funnels).Error; err != nil {
		return nil, err
	}
	return funnels, nil
}

func (r *sessionFunnelRepository) ReplaceAll(ctx context.Context, funnels []entities.SessionFunnel) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM session_funnels").Error; err != nil {
			return err
		}
		if len(funnels) > 0 {
			if err := tx.CreateInBatches(funnels, 500).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func applyFunnelFilters(query *gorm.DB, from, to time.Time, validFunnel *bool, invalidReason string) *gorm.DB {
	if !from.IsZero() {
		query = query.Where("start_time >= ?", from.UTC())
	}
	if !to.IsZero() {
		query = query.Where("start_time <= ?", to.UTC())
	}
	if validFunnel != nil {
		query = query.Where("valid_funnel = ?", *validFunnel)
	}
	if invalidReason != "" {
		query = query.Where("invalid_reason = ?", invalidReason)
	}
	return query
}
