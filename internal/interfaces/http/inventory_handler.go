package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/inventory-core/internal/application/dto"
	"github.com/tu-usuario/inventory-core/internal/application/inventory"
	"github.com/tu-usuario/inventory-core/internal/domain/repository"
)

// InventoryHandler maneja movimientos, traslados y lecturas de stock.
type InventoryHandler struct {
	mutator   *inventory.ApplyMovementUseCase
	transfer  *inventory.TransferUseCase
	snapshot  *inventory.SnapshotUseCase
	movRepo   repository.MovementRepository
	stockRepo repository.StockLevelRepository
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(
	mutator *inventory.ApplyMovementUseCase,
	transfer *inventory.TransferUseCase,
	snapshot *inventory.SnapshotUseCase,
	movRepo repository.MovementRepository,
	stockRepo repository.StockLevelRepository,
) *InventoryHandler {
	return &InventoryHandler{mutator: mutator, transfer: transfer, snapshot: snapshot, movRepo: movRepo, stockRepo: stockRepo}
}

// ApplyMovement registra un movimiento de inventario.
// POST /api/inventory/movements
func (h *InventoryHandler) ApplyMovement(c *fiber.Ctx) error {
	var in dto.ApplyMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	level, mov, err := h.mutator.Apply(c.Context(), inventory.MovementInput{
		ProductID:       in.ProductID,
		LocationID:      in.LocationID,
		Type:            in.Type,
		QuantityDelta:   in.QuantityDelta,
		UnitCost:        in.UnitCost,
		ReferenceNumber: in.ReferenceNumber,
		Reason:          in.Reason,
		ActorID:         in.ActorID,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"stock_level": toStockLevelResponse(level),
		"movement":    toMovementResponse(mov),
	})
}

// Transfer traslada stock entre dos ubicaciones.
// POST /api/inventory/transfers
func (h *InventoryHandler) Transfer(c *fiber.Ctx) error {
	var in dto.TransferRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	outMov, inMov, err := h.transfer.Transfer(c.Context(), inventory.TransferInput{
		ProductID:      in.ProductID,
		FromLocationID: in.FromLocationID,
		ToLocationID:   in.ToLocationID,
		Quantity:       in.Quantity,
		Reason:         in.Reason,
		ActorID:        in.ActorID,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.TransferResponse{
		ReferenceNumber: outMov.ReferenceNumber,
		Outbound:        toMovementResponse(outMov),
		Inbound:         toMovementResponse(inMov),
	})
}

// GetSnapshot devuelve la proyección en tiempo real de una clave.
// GET /api/inventory/snapshot?product_id=...&location_id=...
func (h *InventoryHandler) GetSnapshot(c *fiber.Ctx) error {
	productID := c.Query("product_id")
	locationID := c.Query("location_id")
	if productID == "" || locationID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id y location_id son obligatorios"})
	}

	snap, err := h.snapshot.Get(c.Context(), productID, locationID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(snap)
}

// ListMovements consulta el libro de movimientos con filtros.
// GET /api/inventory/movements
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	filter := repository.MovementFilter{
		ProductID:       c.Query("product_id"),
		LocationID:      c.Query("location_id"),
		Type:            c.Query("type"),
		ReferenceNumber: c.Query("reference_number"),
		Limit:           queryInt(c, "limit", 100),
		Offset:          queryInt(c, "offset", 0),
	}
	if from := c.Query("from"); from != "" {
		if t, err := time.Parse(time.RFC3339, from); err == nil {
			filter.From = &t
		}
	}
	if to := c.Query("to"); to != "" {
		if t, err := time.Parse(time.RFC3339, to); err == nil {
			filter.To = &t
		}
	}

	movements, err := h.movRepo.List(c.Context(), filter)
	if err != nil {
		return respondError(c, err)
	}
	list := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		list = append(list, toMovementResponse(m))
	}
	return c.JSON(fiber.Map{"total": len(list), "movements": list})
}

// ListLevels lista las filas de stock de una ubicación.
// GET /api/inventory/levels?location_id=...
func (h *InventoryHandler) ListLevels(c *fiber.Ctx) error {
	locationID := c.Query("location_id")
	if locationID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "location_id es obligatorio"})
	}

	levels, err := h.stockRepo.ListByLocation(c.Context(), locationID, queryInt(c, "limit", 100), queryInt(c, "offset", 0))
	if err != nil {
		return respondError(c, err)
	}
	list := make([]dto.StockLevelResponse, 0, len(levels))
	for _, lv := range levels {
		list = append(list, toStockLevelResponse(lv))
	}
	return c.JSON(fiber.Map{"total": len(list), "levels": list})
}

func queryInt(c *fiber.Ctx, key string, def int) int {
	raw := c.Query(key)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
