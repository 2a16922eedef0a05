package usecases

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/funnelworks/funnel-intelligence-api/internal/domain/entities"
	"github.com/funnelworks/funnel-intelligence-api/internal/domain/repositories"
	"github.com/funnelworks/funnel-intelligence-api/internal/infrastructure/cache"
)

// FunnelReportUseCase calcula as métricas agregadas do funil
type FunnelReportUseCase interface {
	GetFunnelReport(ctx context.Context, from, to time.Time) (entities.FunnelReport, error)
}

type funnelReportUseCase struct {
	funnelRepo  repositories.SessionFunnelRepository
	reportCache *cache.Cache
}

func NewFunnelReportUseCase(funnelRepo repositories.SessionFunnelRepository, reportCache *cache.Cache) FunnelReportUseCase {
	return &funnelReportUseCase{
		funnelRepo:  funnelRepo,
		reportCache: reportCache,
	}
}

// GetFunnelReport busca os funis do período e agrega as métricas. O
// resultado fica em cache por 1 minuto; uma execução do pipeline
// invalida todas as entradas.
func (uc *funnelReportUseCase) GetFunnelReport(ctx context.Context, from, to time.Time) (entities.FunnelReport, error) {
	cacheKey := fmt.Sprintf("funnel-report:%d:%d", from.Unix(), to.Unix())
	if cached, found := uc.reportCache.Get(cacheKey); found {
		return cached.(entities.FunnelReport), nil
	}

	funnels, err := uc.funnelRepo.FetchAll(ctx, from, to)
	if err != nil {
		return entities.FunnelReport{}, fmt.Errorf("erro ao buscar funis para o relatório: %w", err)
	}

	report := ComputeFunnelReport(funnels)
	uc.reportCache.Set(cacheKey, report, time.Minute)

	return report, nil
}

// ComputeFunnelReport agrega a coleção completa de SessionFunnel em um
// FunnelReport. Alcance de estágio, conversões e drop-off consideram
// apenas sessões com valid_funnel = true; razões com denominador zero
// resultam em percentual nulo, nunca em erro.
func ComputeFunnelReport(funnels []entities.SessionFunnel) entities.FunnelReport {
	report := entities.FunnelReport{
		InvalidByReason: make(map[string]int64),
		GeneratedAt:     time.Now().UTC(),
	}

	var convertSeconds []float64

	for _, funnel := range funnels {
		report.TotalSessions++

		if !funnel.ValidFunnel {
			report.InvalidSessions++
			if funnel.InvalidReason != nil {
				report.InvalidByReason[string(*funnel.InvalidReason)]++
			}
			continue
		}

		report.ValidSessions++
		if funnel.HasView {
			report.StageReach.View++
		}
		if funnel.HasAddtocart {
			report.StageReach.Addtocart++
		}
		if funnel.HasTransaction {
			report.StageReach.Transaction++
		}

		switch funnel.DropOffClass() {
		case entities.DropOffConverted:
			report.DropOff.Converted++
		case entities.DropOffAfterAddtocart:
			report.DropOff.DroppedAfterAddtocart++
		case entities.DropOffAfterView:
			report.DropOff.DroppedAfterView++
		default:
			report.DropOff.NoMeaningfulActivity++
		}

		// Em funis válidos convertidos, view e transaction têm timestamp
		if funnel.HasTransaction && funnel.FirstViewTime != nil && funnel.FirstTransactionTime != nil {
			convertSeconds = append(convertSeconds, funnel.FirstTransactionTime.Sub(*funnel.FirstViewTime).Seconds())
		}
	}

	report.Conversion.ViewToAddtocart = percentage(report.StageReach.Addtocart, report.StageReach.View)
	report.Conversion.AddtocartToTransaction = percentage(report.StageReach.Transaction, report.StageReach.Addtocart)
	report.Conversion.ViewToTransaction = percentage(report.StageReach.Transaction, report.StageReach.View)

	report.TimeToConvert.Sessions = int64(len(convertSeconds))
	report.TimeToConvert.AvgSeconds = mean(convertSeconds)
	report.TimeToConvert.MedianSeconds = median(convertSeconds)

	return report
}

// percentage retorna numerator/denominator em percentual, ou nil quando o
// denominador é zero
func percentage(numerator, denominator int64) *float64 {
	if denominator == 0 {
		return nil
	}
	value := float64(numerator) / float64(denominator) * 100
	return &value
}

func mean(values []float64) *float64 {
	if len(values) == 0 {
		return nil
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	avg := sum / float64(len(values))
	return &avg
}

func median(values []float64) *float64 {
	if len(values) == 0 {
		return nil
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	var med float64
	if len(sorted)%2 == 0 {
		med = (sorted[mid-1] + sorted[mid]) / 2
	} else {
		med = sorted[mid]
	}
	return &med
}
