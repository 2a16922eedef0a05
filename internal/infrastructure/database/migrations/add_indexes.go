package migrations

import (
	"gorm.io/gorm"
)

// AddIndexes adds indexes to the database to improve query performance
func AddIndexes(db *gorm.DB) error {
	// Add indexes to the events table
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_events_visitor_time ON events (visitor_id, event_time)").Error; err != nil {
		return err
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_events_event_time ON events (event_time)").Error; err != nil {
		return err
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_events_event_type ON events (event_type)").Error; err != nil {
		return err
	}

	// Add indexes to the sessionized_events table
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_sessionized_events_session_id ON sessionized_events (session_id)").Error; err != nil {
		return err
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_sessionized_events_visitor_id ON sessionized_events (visitor_id)").Error; err != nil {
		return err
	}

	// Add indexes to the sessions table
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_sessions_visitor_id ON sessions (visitor_id)").Error; err != nil {
		return err
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_sessions_start_time ON sessions (start_time)").Error; err != nil {
		return err
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_sessions_has_transaction ON sessions (has_transaction)").Error; err != nil {
		return err
	}

	// Add indexes to the session_funnels table
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_session_funnels_start_time ON session_funnels (start_time)").Error; err != nil {
		return err
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_session_funnels_valid ON session_funnels (valid_funnel)").Error; err != nil {
		return err
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_session_funnels_invalid_reason ON session_funnels (invalid_reason)").Error; err != nil {
		return err
	}

	// Add indexes to the pipeline_runs table
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_pipeline_runs_started_at ON pipeline_runs (started_at)").Error; err != nil {
		return err
	}

	return nil
}
