package middleware

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func SetupMiddlewares(app *fiber.App) {
	allowOrigins := os.Getenv("ALLOWED_ORIGINS")
	if allowOrigins == "" {
		allowOrigins = "http://localhost:3000"
	}

	// CORS configuration
	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     "GET,POST,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-API-KEY, If-None-Match",
		AllowCredentials: true,
		MaxAge:           300, // 5 minutes
	}))

	app.Use(PerformanceLogger())
}

// RouteGroups define os grupos de rotas da API
type RouteGroups struct {
	Public   fiber.Router
	Pipeline fiber.Router
}

// SetupRouteGroups configura os grupos de rotas com seus respectivos
// middlewares: consultas são públicas, execução do pipeline exige
// autenticação. A ingestão de eventos recebe o middleware de auth
// diretamente na rota (o prefixo /events também atende consultas GET).
func SetupRouteGroups(app *fiber.App, authMiddleware fiber.Handler) RouteGroups {
	// Grupo público (sem autenticação)
	public := app.Group("/")

	// Grupo do pipeline (com autenticação)
	pipeline := app.Group("/pipeline")
	pipeline.Use(authMiddleware)

	return RouteGroups{
		Public:   public,
		Pipeline: pipeline,
	}
}
