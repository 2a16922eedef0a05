package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/funnelworks/funnel-intelligence-api/internal/domain/entities"
	"github.com/patrickmn/go-cache"
	"gorm.io/gorm"
)

type SessionRepository interface {
	GetSessions(ctx context.Context, page, limit int, orderBy string, from, to time.Time, visitorID string, hasTransaction *bool) ([]entities.Session, int64, error)
	FindSessionByID(ctx context.Context, id string) (*entities.Session, error)
	GetSessionEvents(ctx context.Context, id string) ([]entities.SessionizedEvent, error)
	CountSessions(ctx context.Context, from, to time.Time, hasTransaction *bool) (int64, error)
	// ReplaceAll troca as tabelas sessions e sessionized_events por
	// inteiro, em uma única transação
	ReplaceAll(ctx context.Context, sessions []entities.Session, events []entities.SessionizedEvent) error
}

type sessionRepository struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{
		db:    db,
		cache: cache.New(5*time.Minute, 10*time.Minute),
	}
}

func (r *sessionRepository) GetSessions(ctx context.Context, page, limit int, orderBy string, from, to time.Time, visitorID string, hasTransaction *bool) ([]entities.Session, int64, error) {
	// Chave de cache baseada nos parâmetros da consulta
	cacheKey := fmt.Sprintf("sessions:%d:%d:%s:%v:%v:%s:%v",
		page, limit, orderBy, from.Unix(), to.Unix(), visitorID, hasTransaction)

	type sessionsPage struct {
		Sessions []entities.Session
		Total    int64
	}
	if cached, found := r.cache.Get(cacheKey); found {
		pageData := cached.(sessionsPage)
		return pageData.Sessions, pageData.Total, nil
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	var sessions []entities.Session
	var total int64

	query := r.db.WithContext(ctx).Model(&entities.Session{})
	query = applySessionFilters(query, from, to, hasTransaction)
	if visitorID != "" {
		query = query.Where("visitor_id = ?", visitorID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	result := query.Order(orderBy).Offset(offset).Limit(limit).Find(&sessions)
	if result.Error != nil {
		return nil, 0, result.Error
	}

	r.cache.Set(cacheKey, sessionsPage{Sessions: sessions, Total: total}, cache.DefaultExpiration)

	return sessions, total, nil
}

func (r *sessionRepository) FindSessionByID(ctx context.Context, id string) (*entities.Session, error) {
	var session entities.Session
	result := r.db.WithContext(ctx).Where("session_id = ?", id).First(&session)
	if result.Error != nil {
		return nil, result.Error
	}
	return &session, nil
}

func (r *sessionRepository) GetSessionEvents(ctx context.Context, id string) ([]entities.SessionizedEvent, error) {
	var events []entities.SessionizedEvent
	result := r.db.WithContext(ctx).
		Where("session_id = ?", id).
		Order("position_in_session").
		Find(&events)
	if result.Error != nil {
		return nil, result.Error
	}
	return events, nil
}

func (r *sessionRepository) CountSessions(ctx context.Context, from, to time.Time, hasTransaction *bool) (int64, error) {
	var total int64
	query := r.db.WithContext(ctx).Model(&entities.Session{})
	query = applySessionFilters(query, from, to, hasTransaction)
	if err := query.Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (r *sessionRepository) ReplaceAll(ctx context.Context, sessions []entities.Session, events []entities.SessionizedEvent) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM sessionized_events").Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM sessions").Error; err != nil {
			return err
		}
		if len(sessions) > 0 {
			if err := tx.CreateInBatches(sessions, 500).Error; err != nil {
				return err
			}
		}
		if len(events) > 0 {
			if err := tx.CreateInBatches(events, 1000).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	// Tudo que estava em cache referencia a carga anterior
	r.cache.Flush()
	return nil
}

func applySessionFilters(query *gorm.DB, from, to time.Time, hasTransaction *bool) *gorm.DB {
	if !from.IsZero() {
		query = query.Where("start_time >= ?", from.UTC())
	}
	if !to.IsZero() {
		query = query.Where("start_time <= ?", to.UTC())
	}
	if hasTransaction != nil {
		query = query.Where("has_transaction = ?", *hasTransaction)
	}
	return query
}
