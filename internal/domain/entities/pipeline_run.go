package entities

import (
	"time"

	"github.com/google/uuid"
)

// PipelineRun registra uma execução completa do pipeline de
// sessionização + construção de funis, com os contadores do resultado.
type PipelineRun struct {
	RunID            uuid.UUID `json:"run_id" gorm:"type:uuid;primaryKey;column:run_id"`
	StartedAt        time.Time `json:"started_at" gorm:"column:started_at"`
	FinishedAt       time.Time `json:"finished_at" gorm:"column:finished_at"`
	ThresholdSeconds int64     `json:"threshold_seconds" gorm:"column:threshold_seconds"`
	ProcessedEvents  int64     `json:"processed_events" gorm:"column:processed_events"`
	RejectedEvents   int64     `json:"rejected_events" gorm:"column:rejected_events"`
	SessionCount     int64     `json:"session_count" gorm:"column:session_count"`
	ValidFunnels     int64     `json:"valid_funnels" gorm:"column:valid_funnels"`
	InvalidFunnels   int64     `json:"invalid_funnels" gorm:"column:invalid_funnels"`
	DurationMs       int64     `json:"duration_ms" gorm:"column:duration_ms"`
}

func (PipelineRun) TableName() string {
	return "pipeline_runs"
}
