package usecases

import (
	"time"

	"github.com/funnelworks/funnel-intelligence-api/internal/domain/entities"
)

// funnelRule é um par (predicado, razão). As regras são avaliadas em
// ordem de prioridade e a primeira que disparar define o invalid_reason;
// as demais não são avaliadas.
type funnelRule struct {
	reason entities.InvalidReason
	fires  func(f entities.SessionFunnel) bool
}

// Comparações de ordem usam < estrito: timestamps iguais entre dois
// estágios (artefato comum de granularidade grossa) contam como ordem
// válida. Escolha deliberada para não excluir sessões por falso positivo.
var funnelRules = []funnelRule{
	{
		reason: entities.ReasonTxnWithoutView,
		fires: func(f entities.SessionFunnel) bool {
			return f.HasTransaction && f.FirstViewTime == nil
		},
	},
	{
		reason: entities.ReasonTxnWithoutAddtocart,
		fires: func(f entities.SessionFunnel) bool {
			return f.HasTransaction && f.FirstAddtocartTime == nil
		},
	},
	{
		reason: entities.ReasonTxnBeforeAddtocart,
		fires: func(f entities.SessionFunnel) bool {
			return f.HasTransaction && f.FirstTransactionTime != nil && f.FirstAddtocartTime != nil &&
				f.FirstTransactionTime.Before(*f.FirstAddtocartTime)
		},
	},
	{
		reason: entities.ReasonAddtocartWithoutView,
		fires: func(f entities.SessionFunnel) bool {
			return f.HasAddtocart && f.FirstViewTime == nil
		},
	},
	{
		reason: entities.ReasonAddtocartBeforeView,
		fires: func(f entities.SessionFunnel) bool {
			return f.HasAddtocart && f.FirstAddtocartTime != nil && f.FirstViewTime != nil &&
				f.FirstAddtocartTime.Before(*f.FirstViewTime)
		},
	},
}

// FunnelBuilder deriva um SessionFunnel por sessão a partir dos eventos
// sessionizados. Também é uma transformação pura.
type FunnelBuilder struct{}

func NewFunnelBuilder() *FunnelBuilder {
	return &FunnelBuilder{}
}

// Build produz exatamente um SessionFunnel para a sessão informada
func (b *FunnelBuilder) Build(session entities.Session, events []entities.SessionizedEvent) entities.SessionFunnel {
	funnel := entities.SessionFunnel{
		SessionID:       session.SessionID,
		VisitorID:       session.VisitorID,
		StartTime:       session.StartTime,
		EndTime:         session.EndTime,
		DurationSeconds: session.DurationSeconds,
		ValidFunnel:     true,
	}

	for _, event := range events {
		switch event.EventType {
		case entities.EventTypeView:
			funnel.HasView = true
			funnel.FirstViewTime = earliest(funnel.FirstViewTime, event.EventTime)
		case entities.EventTypeAddToCart:
			funnel.HasAddtocart = true
			funnel.FirstAddtocartTime = earliest(funnel.FirstAddtocartTime, event.EventTime)
		case entities.EventTypeTransaction:
			funnel.HasTransaction = true
			funnel.FirstTransactionTime = earliest(funnel.FirstTransactionTime, event.EventTime)
		}
	}

	for _, rule := range funnelRules {
		if rule.fires(funnel) {
			reason := rule.reason
			funnel.InvalidReason = &reason
			funnel.ValidFunnel = false
			break
		}
	}

	return funnel
}

// BuildAll agrupa os eventos sessionizados por sessão e constrói um
// funil para cada sessão do resultado
func (b *FunnelBuilder) BuildAll(result SessionizeResult) []entities.SessionFunnel {
	eventsBySession := make(map[string][]entities.SessionizedEvent, len(result.Sessions))
	for _, event := range result.Events {
		eventsBySession[event.SessionID] = append(eventsBySession[event.SessionID], event)
	}

	funnels := make([]entities.SessionFunnel, 0, len(result.Sessions))
	for _, session := range result.Sessions {
		funnels = append(funnels, b.Build(session, eventsBySession[session.SessionID]))
	}
	return funnels
}

func earliest(current *time.Time, candidate time.Time) *time.Time {
	if current == nil || candidate.Before(*current) {
		return &candidate
	}
	return current
}
