package usecases

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/funnelworks/funnel-intelligence-api/internal/domain/entities"
	"github.com/funnelworks/funnel-intelligence-api/internal/domain/repositories"
	"github.com/funnelworks/funnel-intelligence-api/internal/infrastructure/cache"
	"github.com/google/uuid"
)

// PipelineUseCase orquestra uma execução completa do pipeline:
// carrega os eventos brutos, sessioniza, constrói os funis e substitui
// as tabelas derivadas por inteiro (sem atualização incremental).
type PipelineUseCase interface {
	Run(ctx context.Context) (entities.PipelineRun, error)
	GetRuns(ctx context.Context, page, limit int) ([]entities.PipelineRun, int64, error)
	FindRunByID(ctx context.Context, id string) (*entities.PipelineRun, error)
}

type pipelineUseCase struct {
	cfg         SessionizerConfig
	eventRepo   repositories.EventRepository
	sessionRepo repositories.SessionRepository
	funnelRepo  repositories.SessionFunnelRepository
	runRepo     repositories.PipelineRunRepository
	reportCache *cache.Cache
}

func NewPipelineUseCase(
	cfg SessionizerConfig,
	eventRepo repositories.EventRepository,
	sessionRepo repositories.SessionRepository,
	funnelRepo repositories.SessionFunnelRepository,
	runRepo repositories.PipelineRunRepository,
	reportCache *cache.Cache,
) PipelineUseCase {
	return &pipelineUseCase{
		cfg:         cfg,
		eventRepo:   eventRepo,
		sessionRepo: sessionRepo,
		funnelRepo:  funnelRepo,
		runRepo:     runRepo,
		reportCache: reportCache,
	}
}

func (uc *pipelineUseCase) Run(ctx context.Context) (entities.PipelineRun, error) {
	startedAt := time.Now().UTC()

	sessionizer, err := NewSessionizer(uc.cfg)
	if err != nil {
		return entities.PipelineRun{}, err
	}

	events, err := uc.eventRepo.FetchAllOrdered(ctx)
	if err != nil {
		return entities.PipelineRun{}, fmt.Errorf("erro ao carregar eventos: %w", err)
	}

	result := sessionizer.Sessionize(events)
	funnels := NewFunnelBuilder().BuildAll(result)

	if err := uc.sessionRepo.ReplaceAll(ctx, result.Sessions, result.Events); err != nil {
		return entities.PipelineRun{}, fmt.Errorf("erro ao persistir sessões: %w", err)
	}
	if err := uc.funnelRepo.ReplaceAll(ctx, funnels); err != nil {
		return entities.PipelineRun{}, fmt.Errorf("erro ao persistir funis: %w", err)
	}

	var validFunnels, invalidFunnels int64
	for _, funnel := range funnels {
		if funnel.ValidFunnel {
			validFunnels++
		} else {
			invalidFunnels++
		}
	}

	finishedAt := time.Now().UTC()
	run := entities.PipelineRun{
		RunID:            uuid.New(),
		StartedAt:        startedAt,
		FinishedAt:       finishedAt,
		ThresholdSeconds: int64(uc.cfg.InactivityThreshold / time.Second),
		ProcessedEvents:  int64(len(result.Events)),
		RejectedEvents:   result.RejectedEvents,
		SessionCount:     int64(len(result.Sessions)),
		ValidFunnels:     validFunnels,
		InvalidFunnels:   invalidFunnels,
		DurationMs:       finishedAt.Sub(startedAt).Milliseconds(),
	}

	if err := uc.runRepo.SaveRun(ctx, &run); err != nil {
		return entities.PipelineRun{}, fmt.Errorf("erro ao registrar execução: %w", err)
	}

	// Relatórios em cache ficam obsoletos após a recarga das tabelas
	uc.reportCache.Invalidate()

	log.Printf("✅ Pipeline %s concluído: %d eventos (%d rejeitados), %d sessões, %d funis válidos, %d inválidos em %dms",
		run.RunID, run.ProcessedEvents, run.RejectedEvents, run.SessionCount, run.ValidFunnels, run.InvalidFunnels, run.DurationMs)

	return run, nil
}

func (uc *pipelineUseCase) GetRuns(ctx context.Context, page, limit int) ([]entities.PipelineRun, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	return uc.runRepo.GetRuns(ctx, page, limit)
}

func (uc *pipelineUseCase) FindRunByID(ctx context.Context, id string) (*entities.PipelineRun, error) {
	runID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("run id inválido: %q", id)
	}
	return uc.runRepo.FindRunByID(ctx, runID)
}
