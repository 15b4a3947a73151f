package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/inventory-core/internal/application/inventory"
	"github.com/tu-usuario/inventory-core/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Mutator     *inventory.ApplyMovementUseCase
	Transfer    *inventory.TransferUseCase
	Reservation *inventory.ReservationUseCase
	Snapshot    *inventory.SnapshotUseCase
	Alerts      *inventory.AlertEngine
	MovRepo     repository.MovementRepository
	StockRepo   repository.StockLevelRepository
}

// Router registra las rutas de la API de inventario.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api/inventory")

	inventoryHandler := NewInventoryHandler(deps.Mutator, deps.Transfer, deps.Snapshot, deps.MovRepo, deps.StockRepo)
	api.Post("/movements", inventoryHandler.ApplyMovement)
	api.Get("/movements", inventoryHandler.ListMovements)
	api.Post("/transfers", inventoryHandler.Transfer)
	api.Get("/snapshot", inventoryHandler.GetSnapshot)
	api.Get("/levels", inventoryHandler.ListLevels)

	reservationHandler := NewReservationHandler(deps.Reservation)
	api.Post("/reservations", reservationHandler.Reserve)
	api.Post("/reservations/:id/release", reservationHandler.Release)
	api.Post("/reservations/:id/fulfill", reservationHandler.Fulfill)

	alertHandler := NewAlertHandler(deps.Alerts)
	api.Get("/alerts", alertHandler.ListAlerts)
	api.Post("/alerts/:id/ack", alertHandler.AcknowledgeAlert)
	api.Get("/reorder-suggestions", alertHandler.ListSuggestions)
}
