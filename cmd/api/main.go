package main

import (
	"log"
	"os"
	"time"

	"github.com/funnelworks/funnel-intelligence-api/internal/application/usecases"
	"github.com/funnelworks/funnel-intelligence-api/internal/infrastructure/database"
	"github.com/funnelworks/funnel-intelligence-api/internal/interfaces/http/middleware"
	"github.com/funnelworks/funnel-intelligence-api/internal/interfaces/http/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ No .env file found, using system environment variables")
	}

	// Configuração do sessionizador precisa ser válida antes de qualquer
	// processamento
	sessionizerCfg, err := usecases.SessionizerConfigFromEnv()
	if err != nil {
		log.Fatalf("❌ Invalid sessionizer configuration: %v", err)
	}
	log.Printf("⏱️ Inactivity threshold: %v", sessionizerCfg.InactivityThreshold)

	// Initialize database
	db, err := database.SetupDatabase()
	if err != nil {
		log.Fatalf("❌ Error setting up database: %v", err)
	}

	// Fonte alternativa de eventos brutos (opcional)
	var chClient *database.ClickHouseClient
	if os.Getenv("EVENT_SOURCE") == "clickhouse" {
		chClient, err = database.NewClickHouseClient()
		if err != nil {
			log.Fatalf("❌ Error setting up ClickHouse: %v", err)
		}
		defer chClient.Close()
	}

	// Configure Fiber for better performance
	app := fiber.New(fiber.Config{
		// Increase concurrency for better performance
		Concurrency: 256 * 1024,
		// Set reasonable body limit for event batches
		BodyLimit: 10 * 1024 * 1024, // 10MB
		// Configure server for better performance
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	})

	// Setup middleware
	middleware.SetupMiddlewares(app)

	// Setup routes
	routes.SetupRoutes(app, db, chClient, sessionizerCfg)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("🚀 Server is running on port %s", port)
	log.Fatal(app.Listen(":" + port))
}
