package repository

import (
	"context"

	"github.com/tu-usuario/inventory-core/internal/domain/entity"
)

// StockLevelRepository define el puerto de persistencia para las filas de
// stock por (producto, ubicación). El store debe garantizar exclusión mutua
// por clave (lock de fila o versión) para GetForUpdate.
type StockLevelRepository interface {
	// Get devuelve la fila actual, o una fila en ceros si aún no existe
	// (las filas se crean perezosamente con el primer movimiento).
	Get(ctx context.Context, productID, locationID string) (*entity.StockLevel, error)

	// GetForUpdate devuelve la fila bloqueada para escritura (SELECT FOR UPDATE
	// o equivalente). Solo válido dentro de una transacción.
	GetForUpdate(ctx context.Context, productID, locationID string) (*entity.StockLevel, error)

	// Upsert inserta o reemplaza la fila completa.
	Upsert(ctx context.Context, level *entity.StockLevel) error

	// ListByLocation lista las filas de una ubicación, más reciente primero.
	ListByLocation(ctx context.Context, locationID string, limit, offset int) ([]*entity.StockLevel, error)
}
