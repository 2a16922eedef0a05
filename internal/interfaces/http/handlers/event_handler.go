package handlers

import (
	"fmt"

	"github.com/funnelworks/funnel-intelligence-api/internal/application/usecases"
	"github.com/funnelworks/funnel-intelligence-api/internal/domain/entities"
	"github.com/funnelworks/funnel-intelligence-api/internal/utils"
	"github.com/gofiber/fiber/v2"
)

type EventHandler struct {
	eventUseCase usecases.EventUseCase
}

func NewEventHandler(eventUseCase usecases.EventUseCase) *EventHandler {
	return &EventHandler{eventUseCase}
}

func (h *EventHandler) GetEvents(c *fiber.Ctx) error {
	page, limit := parsePagination(c, 100)

	from, to, err := utils.ParseDateRange(c.Query("from"), c.Query("to"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	eventType := c.Query("event_type")
	if eventType != "" && !entities.IsKnownEventType(eventType) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("event_type inválido: %q", eventType),
		})
	}

	validSortFields := map[string]string{
		"ingestion_id": "ingestion_id",
		"visitor_id":   "visitor_id",
		"event_time":   "event_time",
		"event_type":   "event_type",
	}
	orderBy, sortBy, sortDirection := parseOrderBy(c, validSortFields, "event_time desc")

	events, total, err := h.eventUseCase.GetEvents(c.Context(), page, limit, orderBy, from, to, eventType)
	if err != nil {
		fmt.Printf("Error getting events: %v\n", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"data": events,
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

// TrackEvents ingere um lote de eventos brutos no formato JSON
func (h *EventHandler) TrackEvents(c *fiber.Ctx) error {
	var events []entities.Event
	if err := c.BodyParser(&events); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "payload inválido: esperado um array de eventos",
		})
	}

	inserted, err := h.eventUseCase.TrackEvents(c.Context(), events)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"inserted": inserted,
	})
}
