package handlers

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/funnelworks/funnel-intelligence-api/internal/application/usecases"
	"github.com/funnelworks/funnel-intelligence-api/internal/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type SessionHandler struct {
	sessionUseCase *usecases.SessionUseCase
}

func NewSessionHandler(sessionUseCase *usecases.SessionUseCase) *SessionHandler {
	return &SessionHandler{sessionUseCase}
}

func (h *SessionHandler) GetSessions(c *fiber.Ctx) error {
	page, limit := parsePagination(c, 100)

	from, to, err := utils.ParseDateRange(c.Query("from"), c.Query("to"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	visitorID := c.Query("visitor_id")

	var hasTransaction *bool
	if raw := c.Query("has_transaction"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("has_transaction inválido: %q", raw),
			})
		}
		hasTransaction = &parsed
	}

	validSortFields := map[string]string{
		"session_id":       "session_id",
		"visitor_id":       "visitor_id",
		"start_time":       "start_time",
		"end_time":         "end_time",
		"duration_seconds": "duration_seconds",
		"total_events":     "total_events",
	}
	orderBy, sortBy, sortDirection := parseOrderBy(c, validSortFields, "start_time desc")

	sessions, total, err := h.sessionUseCase.GetSessions(c.Context(), page, limit, orderBy, from, to, visitorID, hasTransaction)
	if err != nil {
		fmt.Printf("Error getting sessions: %v\n", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"data": sessions,
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

func (h *SessionHandler) GetSessionByID(c *fiber.Ctx) error {
	id := c.Params("id")

	session, err := h.sessionUseCase.FindSessionByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": fmt.Sprintf("sessão não encontrada: %s", id),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"data": session,
	})
}

// GetSessionEvents retorna os eventos de uma sessão na ordem em que
// aconteceram dentro dela
func (h *SessionHandler) GetSessionEvents(c *fiber.Ctx) error {
	id := c.Params("id")

	events, err := h.sessionUseCase.GetSessionEvents(c.Context(), id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"data": events,
		"meta": fiber.Map{
			"session_id": id,
			"total":      len(events),
		},
	})
}
