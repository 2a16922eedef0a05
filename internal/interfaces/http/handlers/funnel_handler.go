package handlers

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/funnelworks/funnel-intelligence-api/internal/application/usecases"
	"github.com/funnelworks/funnel-intelligence-api/internal/domain/entities"
	"github.com/funnelworks/funnel-intelligence-api/internal/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type FunnelHandler struct {
	funnelUseCase usecases.FunnelUseCase
}

func NewFunnelHandler(funnelUseCase usecases.FunnelUseCase) *FunnelHandler {
	return &FunnelHandler{funnelUseCase}
}

func (h *FunnelHandler) GetSessionFunnels(c *fiber.Ctx) error {
	page, limit := parsePagination(c, 100)

	from, to, err := utils.ParseDateRange(c.Query("from"), c.Query("to"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	var validFunnel *bool
	if raw := c.Query("valid"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("valid inválido: %q", raw),
			})
		}
		validFunnel = &parsed
	}

	invalidReason := c.Query("invalid_reason")
	if invalidReason != "" && !isKnownInvalidReason(invalidReason) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("invalid_reason desconhecido: %q", invalidReason),
		})
	}

	validSortFields := map[string]string{
		"session_id":       "session_id",
		"visitor_id":       "visitor_id",
		"start_time":       "start_time",
		"duration_seconds": "duration_seconds",
		"valid_funnel":     "valid_funnel",
	}
	orderBy, sortBy, sortDirection := parseOrderBy(c, validSortFields, "start_time desc")

	funnels, total, err := h.funnelUseCase.GetSessionFunnels(c.Context(), page, limit, orderBy, from, to, validFunnel, invalidReason)
	if err != nil {
		fmt.Printf("Error getting session funnels: %v\n", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"data": funnels,
		"meta": fiber.Map{
			"total":             total,
			"page":              page,
			"limit":             limit,
			"last_page":         (total + int64(limit) - 1) / int64(limit),
			"sort_by":           sortBy,
			"sort_direction":    sortDirection,
			"valid_sort_fields": getKeys(validSortFields),
		},
	})
}

func (h *FunnelHandler) GetSessionFunnelByID(c *fiber.Ctx) error {
	id := c.Params("id")

	funnel, err := h.funnelUseCase.FindBySessionID(c.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": fmt.Sprintf("funil não encontrado para a sessão: %s", id),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"data": funnel,
	})
}

func isKnownInvalidReason(reason string) bool {
	for _, known := range entities.AllInvalidReasons {
		if string(known) == reason {
			return true
		}
	}
	return false
}
