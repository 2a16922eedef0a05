package entities

import "time"

// InvalidReason é o conjunto fechado de violações de ordenação do funil.
// Quando mais de uma violação se aplica, vale a de maior prioridade
// (ordem de declaração abaixo).
type InvalidReason string

const (
	ReasonTxnWithoutView       InvalidReason = "TXN_WITHOUT_VIEW"
	ReasonTxnWithoutAddtocart  InvalidReason = "TXN_WITHOUT_ADDTOCART"
	ReasonTxnBeforeAddtocart   InvalidReason = "TXN_BEFORE_ADDTOCART"
	ReasonAddtocartWithoutView InvalidReason = "ADDTOCART_WITHOUT_VIEW"
	ReasonAddtocartBeforeView  InvalidReason = "ADDTOCART_BEFORE_VIEW"
)

// AllInvalidReasons lista as razões na ordem de prioridade de avaliação
var AllInvalidReasons = []InvalidReason{
	ReasonTxnWithoutView,
	ReasonTxnWithoutAddtocart,
	ReasonTxnBeforeAddtocart,
	ReasonAddtocartWithoutView,
	ReasonAddtocartBeforeView,
}

// SessionFunnel é o julgamento derivado do caminho de conversão de uma
// sessão: presença de cada estágio, primeiro timestamp de cada estágio e
// o veredito de validade. Um registro por sessão, recalculado por inteiro
// a cada execução do pipeline.
type SessionFunnel struct {
	SessionID            string         `json:"session_id" gorm:"primaryKey;column:session_id"`
	VisitorID            int64          `json:"visitor_id" gorm:"column:visitor_id"`
	StartTime            time.Time      `json:"start_time" gorm:"column:start_time"`
	EndTime              time.Time      `json:"end_time" gorm:"column:end_time"`
	DurationSeconds      int64          `json:"duration_seconds" gorm:"column:duration_seconds"`
	HasView              bool           `json:"has_view" gorm:"column:has_view"`
	HasAddtocart         bool           `json:"has_addtocart" gorm:"column:has_addtocart"`
	HasTransaction       bool           `json:"has_transaction" gorm:"column:has_transaction"`
	FirstViewTime        *time.Time     `json:"first_view_time" gorm:"column:first_view_time"`
	FirstAddtocartTime   *time.Time     `json:"first_addtocart_time" gorm:"column:first_addtocart_time"`
	FirstTransactionTime *time.Time     `json:"first_transaction_time" gorm:"column:first_transaction_time"`
	InvalidReason        *InvalidReason `json:"invalid_reason" gorm:"column:invalid_reason"`
	ValidFunnel          bool           `json:"valid_funnel" gorm:"column:valid_funnel"`
}

func (SessionFunnel) TableName() string {
	return "session_funnels"
}

// Classes de drop-off para sessões com funil válido
const (
	DropOffConverted            = "converted"
	DropOffAfterView            = "dropped_after_view"
	DropOffAfterAddtocart       = "dropped_after_addtocart"
	DropOffNoMeaningfulActivity = "no_meaningful_activity"
)

// DropOffClass classifica uma sessão válida pelo último estágio alcançado
func (f SessionFunnel) DropOffClass() string {
	switch {
	case f.HasTransaction:
		return DropOffConverted
	case f.HasAddtocart:
		return DropOffAfterAddtocart
	case f.HasView:
		return DropOffAfterView
	default:
		return DropOffNoMeaningfulActivity
	}
}
