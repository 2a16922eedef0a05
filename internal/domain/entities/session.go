package entities

import "time"

// SessionizedEvent é um evento já atribuído a uma sessão, com sua
// posição dentro dela. É a saída por-evento do sessionizador.
type SessionizedEvent struct {
	IngestionID       int64     `json:"ingestion_id" gorm:"primaryKey;column:ingestion_id"`
	VisitorID         int64     `json:"visitor_id" gorm:"column:visitor_id"`
	EventTime         time.Time `json:"event_time" gorm:"column:event_time"`
	EventType         string    `json:"event_type" gorm:"column:event_type"`
	ItemID            *int64    `json:"item_id,omitempty" gorm:"column:item_id"`
	TransactionID     *int64    `json:"transaction_id,omitempty" gorm:"column:transaction_id"`
	SessionID         string    `json:"session_id" gorm:"column:session_id"`
	SessionSequence   int       `json:"session_sequence" gorm:"column:session_sequence"`
	PositionInSession int       `json:"position_in_session" gorm:"column:position_in_session"`
}

func (SessionizedEvent) TableName() string {
	return "sessionized_events"
}

// Session é o agregado de uma sessão: um trecho maximal de eventos de um
// visitante sem intervalo interno maior que o limite de inatividade.
// SessionID é "<visitor_id>_<session_sequence>", com sequence começando em 1.
type Session struct {
	SessionID        string    `json:"session_id" gorm:"primaryKey;column:session_id"`
	VisitorID        int64     `json:"visitor_id" gorm:"column:visitor_id"`
	SessionSequence  int       `json:"session_sequence" gorm:"column:session_sequence"`
	StartTime        time.Time `json:"start_time" gorm:"column:start_time"`
	EndTime          time.Time `json:"end_time" gorm:"column:end_time"`
	DurationSeconds  int64     `json:"duration_seconds" gorm:"column:duration_seconds"`
	TotalEvents      int       `json:"total_events" gorm:"column:total_events"`
	ViewCount        int       `json:"view_count" gorm:"column:view_count"`
	AddtocartCount   int       `json:"addtocart_count" gorm:"column:addtocart_count"`
	TransactionCount int       `json:"transaction_count" gorm:"column:transaction_count"`
	HasTransaction   bool      `json:"has_transaction" gorm:"column:has_transaction"`
}

func (Session) TableName() string {
	return "sessions"
}
