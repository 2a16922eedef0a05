package entities

import (
	"crypto/md5"
	"encoding/json"
	"fmt"
	"time"
)

// FunnelReport é a resposta consolidada de métricas do funil, calculada
// sobre a coleção completa de SessionFunnel. Percentuais de conversão são
// calculados apenas sobre sessões com valid_funnel = true; razões com
// denominador zero ficam nulas em vez de gerar erro.
type FunnelReport struct {
	TotalSessions   int64            `json:"total_sessions"`
	ValidSessions   int64            `json:"valid_sessions"`
	InvalidSessions int64            `json:"invalid_sessions"`
	InvalidByReason map[string]int64 `json:"invalid_by_reason"`
	StageReach      StageReach       `json:"stage_reach"`
	Conversion      ConversionRates  `json:"conversion"`
	DropOff         DropOffBreakdown `json:"drop_off"`
	TimeToConvert   TimeToConvert    `json:"time_to_convert"`
	GeneratedAt     time.Time        `json:"generated_at"`
	ETag            string           `json:"-"` // Campo interno para geração de ETag
}

// StageReach conta quantas sessões válidas alcançaram cada estágio
type StageReach struct {
	View        int64 `json:"view"`
	Addtocart   int64 `json:"addtocart"`
	Transaction int64 `json:"transaction"`
}

// ConversionRates contém os percentuais estágio-a-estágio (0–100).
// Ponteiros nulos significam "indefinido" (nenhuma sessão no denominador).
type ConversionRates struct {
	ViewToAddtocart        *float64 `json:"view_to_addtocart"`
	AddtocartToTransaction *float64 `json:"addtocart_to_transaction"`
	ViewToTransaction      *float64 `json:"view_to_transaction"`
}

// DropOffBreakdown classifica cada sessão válida pelo estágio em que parou
type DropOffBreakdown struct {
	Converted             int64 `json:"converted"`
	DroppedAfterView      int64 `json:"dropped_after_view"`
	DroppedAfterAddtocart int64 `json:"dropped_after_addtocart"`
	NoMeaningfulActivity  int64 `json:"no_meaningful_activity"`
}

// TimeToConvert resume first_transaction_time - first_view_time das
// sessões convertidas
type TimeToConvert struct {
	Sessions      int64    `json:"sessions"`
	AvgSeconds    *float64 `json:"avg_seconds"`
	MedianSeconds *float64 `json:"median_seconds"`
}

// CalculateETag gera um hash único para identificar a versão dos dados
func (r *FunnelReport) CalculateETag() string {
	data, _ := json.Marshal(r)
	hash := md5.Sum(data)
	r.ETag = fmt.Sprintf("%x", hash)
	return r.ETag
}
