package handlers

import (
	"fmt"

	"github.com/funnelworks/funnel-intelligence-api/internal/application/usecases"
	"github.com/funnelworks/funnel-intelligence-api/internal/utils"
	"github.com/gofiber/fiber/v2"
)

type ReportHandler struct {
	reportUseCase usecases.FunnelReportUseCase
}

func NewReportHandler(reportUseCase usecases.FunnelReportUseCase) *ReportHandler {
	return &ReportHandler{reportUseCase}
}

// GetFunnelReport retorna as métricas agregadas do funil, com suporte a
// ETag/If-None-Match para evitar reenvio de payload inalterado
func (h *ReportHandler) GetFunnelReport(c *fiber.Ctx) error {
	from, to, err := utils.ParseDateRange(c.Query("from"), c.Query("to"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	report, err := h.reportUseCase.GetFunnelReport(c.Context(), from, to)
	if err != nil {
		fmt.Printf("Error getting funnel report: %v\n", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	etag := report.CalculateETag()
	if c.Get("If-None-Match") == etag {
		return c.SendStatus(fiber.StatusNotModified)
	}
	c.Set("ETag", etag)

	return c.JSON(fiber.Map{
		"data": report,
	})
}
