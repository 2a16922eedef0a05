package repositories

import (
	"context"

	"github.com/funnelworks/funnel-intelligence-api/internal/domain/entities"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PipelineRunRepository interface {
	SaveRun(ctx context.Context, run *entities.PipelineRun) error
	GetRuns(ctx context.Context, page, limit int) ([]entities.PipelineRun, int64, error)
	FindRunByID(ctx context.Context, runID uuid.UUID) (*entities.PipelineRun, error)
}

type pipelineRunRepository struct {
	db *gorm.DB
}

func NewPipelineRunRepository(db *gorm.DB) PipelineRunRepository {
	return &pipelineRunRepository{db}
}

func (r *pipelineRunRepository) SaveRun(ctx context.Context, run *entities.PipelineRun) error {
	return r.db.WithContext(ctx).Create(run).Error
}

func (r *pipelineRunRepository) GetRuns(ctx context.Context, page, limit int) ([]entities.PipelineRun, int64, error) {
	var runs []entities.PipelineRun
	var total int64

	if err := r.db.WithContext(ctx).Model(&entities.PipelineRun{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	result := r.db.WithContext(ctx).
		Model(&entities.PipelineRun{}).
		Order("started_at desc").
		Offset(offset).
		Limit(limit).
		Find(&runs)
	if result.Error != nil {
		return nil, 0, result.Error
	}

	return runs, total, nil
}

func (r *pipelineRunRepository) FindRunByID(ctx context.Context, runID uuid.UUID) (*entities.PipelineRun, error) {
	var run entities.PipelineRun
	result := r.db.WithContext(ctx).Where("run_id = ?", runID).First(&run)
	if result.Error != nil {
		return nil, result.Error
	}
	return &run, nil
}
