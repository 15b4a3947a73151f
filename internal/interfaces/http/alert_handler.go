package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/inventory-core/internal/application/dto"
	"github.com/tu-usuario/inventory-core/internal/application/inventory"
	"github.com/tu-usuario/inventory-core/internal/domain/repository"
)

// AlertHandler maneja consultas y reconocimiento de alertas y sugerencias.
type AlertHandler struct {
	engine *inventory.AlertEngine
}

// NewAlertHandler construye el handler.
func NewAlertHandler(engine *inventory.AlertEngine) *AlertHandler {
	return &AlertHandler{engine: engine}
}

// ListAlerts consulta alertas con filtros.
// GET /api/inventory/alerts
func (h *AlertHandler) ListAlerts(c *fiber.Ctx) error {
	filter := repository.AlertFilter{
		ProductID:   c.Query("product_id"),
		LocationID:  c.Query("location_id"),
		Type:        c.Query("type"),
		OnlyUnacked: c.QueryBool("only_unacknowledged"),
		Limit:       queryInt(c, "limit", 100),
		Offset:      queryInt(c, "offset", 0),
	}

	alerts, err := h.engine.List(c.Context(), filter)
	if err != nil {
		return respondError(c, err)
	}
	list := make([]dto.AlertResponse, 0, len(alerts))
	for _, a := range alerts {
		list = append(list, toAlertResponse(a))
	}
	return c.JSON(fiber.Map{"total": len(list), "alerts": list})
}

// AcknowledgeAlert marca una alerta como reconocida.
// POST /api/inventory/alerts/:id/ack
func (h *AlertHandler) AcknowledgeAlert(c *fiber.Ctx) error {
	var in dto.AcknowledgeAlertRequest
	if err := c.BodyParser(&in); err != nil || in.ActorID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "actor_id es obligatorio"})
	}

	if err := h.engine.Acknowledge(c.Context(), c.Params("id"), in.ActorID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "alerta reconocida"})
}

// ListSuggestions consulta sugerencias de reposición.
// GET /api/inventory/reorder-suggestions
func (h *AlertHandler) ListSuggestions(c *fiber.Ctx) error {
	filter := repository.SuggestionFilter{
		ProductID:  c.Query("product_id"),
		LocationID: c.Query("location_id"),
		Limit:      queryInt(c, "limit", 100),
		Offset:     queryInt(c, "offset", 0),
	}

	suggestions, err := h.engine.ListSuggestions(c.Context(), filter)
	if err != nil {
		return respondError(c, err)
	}
	list := make([]dto.ReorderSuggestionResponse, 0, len(suggestions))
	for _, s := range suggestions {
		list = append(list, toSuggestionResponse(s))
	}
	return c.JSON(fiber.Map{"total": len(list), "suggestions": list})
}
