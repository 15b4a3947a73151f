package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/inventory-core/internal/application/dto"
	"github.com/tu-usuario/inventory-core/internal/application/inventory"
)

// ReservationHandler maneja la creación y transiciones de reservas.
type ReservationHandler struct {
	uc *inventory.ReservationUseCase
}

// NewReservationHandler construye el handler.
func NewReservationHandler(uc *inventory.ReservationUseCase) *ReservationHandler {
	return &ReservationHandler{uc: uc}
}

// Reserve retiene stock disponible a favor de un consumidor.
// POST /api/inventory/reservations
func (h *ReservationHandler) Reserve(c *fiber.Ctx) error {
	var in dto.ReserveRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	res, err := h.uc.Reserve(c.Context(), inventory.ReserveInput{
		ProductID:   in.ProductID,
		LocationID:  in.LocationID,
		Quantity:    in.Quantity,
		ReservedFor: in.ReservedFor,
		Priority:    in.Priority,
		ExpiresAt:   in.ExpiresAt,
		ActorID:     in.ActorID,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toReservationResponse(res))
}

// Release cancela una reserva activa.
// POST /api/inventory/reservations/:id/release
func (h *ReservationHandler) Release(c *fiber.Ctx) error {
	var in dto.ReleaseReservationRequest
	_ = c.BodyParser(&in) // reason es opcional
	if in.Reason == "" {
		in.Reason = "liberación manual"
	}

	if err := h.uc.Release(c.Context(), c.Params("id"), in.Reason); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "reserva liberada"})
}

// Fulfill convierte una reserva activa en salida real.
// POST /api/inventory/reservations/:id/fulfill
func (h *ReservationHandler) Fulfill(c *fiber.Ctx) error {
	if err := h.uc.Fulfill(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "reserva cumplida"})
}
