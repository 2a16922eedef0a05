package entities

import "time"

// Tipos de evento reconhecidos no clickstream
const (
	EventTypeView        = "view"
	EventTypeAddToCart   = "addtocart"
	EventTypeTransaction = "transaction"
)

// Event representa uma interação bruta do visitante no clickstream.
// VisitorID e EventTime são ponteiros porque eventos malformados
// (sem visitante ou sem timestamp) existem na fonte e precisam ser
// contabilizados como rejeitados, não descartados silenciosamente.
type Event struct {
	IngestionID   int64      `json:"ingestion_id" gorm:"primaryKey;autoIncrement;column:ingestion_id"`
	VisitorID     *int64     `json:"visitor_id" gorm:"column:visitor_id"`
	EventTime     *time.Time `json:"event_time" gorm:"column:event_time"`
	EventType     string     `json:"event_type" gorm:"column:event_type"`
	ItemID        *int64     `json:"item_id,omitempty" gorm:"column:item_id"`
	TransactionID *int64     `json:"transaction_id,omitempty" gorm:"column:transaction_id"`
}

func (Event) TableName() string {
	return "events"
}

// HasRequiredFields indica se o evento pode ser sessionizado
func (e Event) HasRequiredFields() bool {
	return e.VisitorID != nil && e.EventTime != nil
}

// IsKnownEventType valida o event_type contra os tipos reconhecidos
func IsKnownEventType(eventType string) bool {
	switch eventType {
	case EventTypeView, EventTypeAddToCart, EventTypeTransaction:
		return true
	}
	return false
}
