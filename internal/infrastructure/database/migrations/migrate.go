package migrations

import (
	"github.com/funnelworks/funnel-intelligence-api/internal/domain/entities"
	"gorm.io/gorm"
)

// Migrate cria/atualiza o schema das tabelas do pipeline
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entities.Event{},
		&entities.SessionizedEvent{},
		&entities.Session{},
		&entities.SessionFunnel{},
		&entities.PipelineRun{},
	)
}
