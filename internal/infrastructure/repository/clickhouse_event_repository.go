package repository

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/funnelworks/funnel-intelligence-api/internal/domain/entities"
	"github.com/funnelworks/funnel-intelligence-api/internal/domain/repositories"
	"github.com/funnelworks/funnel-intelligence-api/internal/infrastructure/database"
)

// ClickHouseEventRepository implementa repositories.EventRepository sobre
// uma tabela de eventos no ClickHouse, para clickstreams grandes demais
// para o Postgres. O restante do pipeline não enxerga diferença.
type ClickHouseEventRepository struct {
	client *database.ClickHouseClient
}

func NewClickHouseEventRepository(client *database.ClickHouseClient) repositories.EventRepository {
	return &ClickHouseEventRepository{client: client}
}

func (r *ClickHouseEventRepository) GetEvents(ctx context.Context, page, limit int, orderBy string, from, to time.Time, eventType string) ([]entities.Event, int64, error) {
	where := "WHERE 1 = 1"
	var args []interface{}

	if !from.IsZero() {
		where += " AND event_time >= ?"
		args = append(args, from.UTC())
	}
	if !to.IsZero() {
		where += " AND event_time <= ?"
		args = append(args, to.UTC())
	}
	if eventType != "" {
		where += " AND event_type = ?"
		args = append(args, eventType)
	}

	var total uint64
	countQuery := fmt.Sprintf("SELECT count() FROM events %s", where)
	if err := r.client.Conn.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count events: %w", err)
	}

	offset := (page - 1) * limit
	query := fmt.Sprintf(`
		SELECT ingestion_id, visitor_id, event_time, event_type, item_id, transaction_id
		FROM events
		%s
		ORDER BY %s
		LIMIT %d OFFSET %d
	`, where, orderBy, limit, offset)

	events, err := r.scanEvents(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}

	return events, int64(total), nil
}

func (r *ClickHouseEventRepository) FetchAllOrdered(ctx context.Context) ([]entities.Event, error) {
	query := `
		SELECT ingestion_id, visitor_id, event_time, event_type, item_id, transaction_id
		FROM events
		ORDER BY visitor_id, event_time, ingestion_id
	`
	return r.scanEvents(ctx, query)
}

func (r *ClickHouseEventRepository) CreateBatch(ctx context.Context, events []entities.Event) error {
	if len(events) == 0 {
		return nil
	}

	batch, err := r.client.Conn.PrepareBatch(ctx, `
		INSERT INTO events (ingestion_id, visitor_id, event_time, event_type, item_id, transaction_id)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare batch insert: %w", err)
	}

	for _, event := range events {
		err := batch.Append(
			event.IngestionID,
			event.VisitorID,
			event.EventTime,
			event.EventType,
			event.ItemID,
			event.TransactionID,
		)
		if err != nil {
			log.Printf("Error appending event to batch (IngestionID: %d): %v", event.IngestionID, err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("failed to send batch: %w", err)
	}

	log.Printf("Successfully inserted %d events into ClickHouse.", len(events))
	return nil
}

func (r *ClickHouseEventRepository) scanEvents(ctx context.Context, query string, args ...interface{}) ([]entities.Event, error) {
	rows, err := r.client.Conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var events []entities.Event
	for rows.Next() {
		var event entities.Event
		if err := rows.Scan(
			&event.IngestionID,
			&event.VisitorID,
			&event.EventTime,
			&event.EventType,
			&event.ItemID,
			&event.TransactionID,
		); err != nil {
			log.Printf("Error scanning event row: %v", err)
			continue
		}
		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row error during events query: %w", err)
	}

	return events, nil
}
