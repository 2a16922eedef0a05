package middleware

import (
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Rotas caras o suficiente para merecer medição: a execução do pipeline
// recarrega as tabelas derivadas inteiras e o relatório varre todos os
// funis quando o cache está frio
var monitoredRoutes = []string{
	"/pipeline",
	"/funnels/report",
}

const slowRequestThreshold = 2 * time.Second

// PerformanceLogger mede o tempo de resposta das rotas críticas e
// destaca requisições lentas
func PerformanceLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		path := c.Path()

		shouldMonitor := false
		for _, route := range monitoredRoutes {
			if strings.HasPrefix(path, route) {
				shouldMonitor = true
				break
			}
		}
		if !shouldMonitor {
			return c.Next()
		}

		start := time.Now()
		err := c.Next()
		duration := time.Since(start)

		marker := "[PERFORMANCE]"
		if duration > slowRequestThreshold {
			marker = "[PERFORMANCE][SLOW]"
		}
		log.Printf(
			"%s %s %s - %d - Duration: %v - Query params: %s",
			marker,
			c.Method(),
			path,
			c.Response().StatusCode(),
			duration,
			c.Request().URI().QueryArgs().String(),
		)

		return err
	}
}
