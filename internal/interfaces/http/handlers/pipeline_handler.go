package handlers

import (
	"errors"
	"fmt"

	"github.com/funnelworks/funnel-intelligence-api/internal/application/usecases"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type PipelineHandler struct {
	pipelineUseCase usecases.PipelineUseCase
}

func NewPipelineHandler(pipelineUseCase usecases.PipelineUseCase) *PipelineHandler {
	return &PipelineHandler{pipelineUseCase}
}

// RunPipeline dispara uma execução completa: sessionização + construção
// de funis + substituição das tabelas derivadas
func (h *PipelineHandler) RunPipeline(c *fiber.Ctx) error {
	run, err := h.pipelineUseCase.Run(c.Context())
	if err != nil {
		fmt.Printf("Error running pipeline: %v\n", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"data": run,
	})
}

func (h *PipelineHandler) GetRuns(c *fiber.Ctx) error {
	page, limit := parsePagination(c, 20)

	runs, total, err := h.pipelineUseCase.GetRuns(c.Context(), page, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"data": runs,
		"meta": fiber.Map{
			"total":     total,
			"page":      page,
			"limit":     limit,
			"last_page": (total + int64(limit) - 1) / int64(limit),
		},
	})
}

func (h *PipelineHandler) GetRunByID(c *fiber.Ctx) error {
	id := c.Params("id")

	run, err := h.pipelineUseCase.FindRunByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": fmt.Sprintf("execução não encontrada: %s", id),
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"data": run,
	})
}
