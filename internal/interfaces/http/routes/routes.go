package routes

import (
	"log"
	"os"

	"github.com/funnelworks/funnel-intelligence-api/internal/application/usecases"
	"github.com/funnelworks/funnel-intelligence-api/internal/domain/repositories"
	"github.com/funnelworks/funnel-intelligence-api/internal/infrastructure/cache"
	"github.com/funnelworks/funnel-intelligence-api/internal/infrastructure/database"
	infrarepo "github.com/funnelworks/funnel-intelligence-api/internal/infrastructure/repository"
	"github.com/funnelworks/funnel-intelligence-api/internal/interfaces/http/handlers"
	"github.com/funnelworks/funnel-intelligence-api/internal/interfaces/http/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, chClient *database.ClickHouseClient, sessionizerCfg usecases.SessionizerConfig) {
	// Add performance middleware
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))

	// Add ETag support for efficient caching
	app.Use(etag.New())

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// Repositories — a fonte de eventos brutos pode ser Postgres (padrão)
	// ou ClickHouse, conforme EVENT_SOURCE
	var eventRepo repositories.EventRepository
	if os.Getenv("EVENT_SOURCE") == "clickhouse" && chClient != nil {
		log.Println("📦 Usando ClickHouse como fonte de eventos")
		eventRepo = infrarepo.NewClickHouseEventRepository(chClient)
	} else {
		eventRepo = repositories.NewEventRepository(db)
	}
	sessionRepo := repositories.NewSessionRepository(db)
	funnelRepo := repositories.NewSessionFunnelRepository(db)
	runRepo := repositories.NewPipelineRunRepository(db)

	// Cache de relatórios, invalidado a cada execução do pipeline
	reportCache := cache.New()

	// Use Cases
	eventUseCase := usecases.NewEventUseCase(eventRepo)
	sessionUseCase := usecases.NewSessionUseCase(sessionRepo)
	funnelUseCase := usecases.NewFunnelUseCase(funnelRepo)
	reportUseCase := usecases.NewFunnelReportUseCase(funnelRepo, reportCache)
	pipelineUseCase := usecases.NewPipelineUseCase(sessionizerCfg, eventRepo, sessionRepo, funnelRepo, runRepo, reportCache)

	// Handlers
	eventHandler := handlers.NewEventHandler(eventUseCase)
	sessionHandler := handlers.NewSessionHandler(sessionUseCase)
	funnelHandler := handlers.NewFunnelHandler(funnelUseCase)
	reportHandler := handlers.NewReportHandler(reportUseCase)
	pipelineHandler := handlers.NewPipelineHandler(pipelineUseCase)

	// Routes
	authMiddleware := middleware.AuthRequired()
	groups := middleware.SetupRouteGroups(app, authMiddleware)

	// Events routes
	groups.Public.Get("/events", eventHandler.GetEvents)
	groups.Public.Post("/events", authMiddleware, eventHandler.TrackEvents)

	// Sessions routes
	groups.Public.Get("/sessions", sessionHandler.GetSessions)
	groups.Public.Get("/sessions/:id", sessionHandler.GetSessionByID)
	groups.Public.Get("/sessions/:id/events", sessionHandler.GetSessionEvents)

	// Funnels routes
	groups.Public.Get("/funnels/report", reportHandler.GetFunnelReport)
	groups.Public.Get("/funnels", funnelHandler.GetSessionFunnels)
	groups.Public.Get("/funnels/:id", funnelHandler.GetSessionFunnelByID)

	// Pipeline routes
	groups.Pipeline.Post("/run", pipelineHandler.RunPipeline)
	groups.Pipeline.Get("/runs", pipelineHandler.GetRuns)
	groups.Pipeline.Get("/runs/:id", pipelineHandler.GetRunByID)
}
