package inventory

import (
	"context"
	"fmt"

	"github.com/tu-usuario/inventory-core/internal/domain/entity"
	domaininv "github.com/tu-usuario/inventory-core/internal/domain/inventory"
	"github.com/tu-usuario/inventory-core/internal/domain/repository"
)

// SnapshotUseCase sirve lecturas de baja latencia del stock actual.
// La proyección se refresca de forma síncrona tras cada mutación; un miss en
// lectura dispara un refresh (cache-aside), así que nunca queda obsoleta por
// más de un miss. No necesita TTL para ser correcta.
type SnapshotUseCase struct {
	stockRepo repository.StockLevelRepository
	cache     SnapshotCache
}

var _ SnapshotRefresher = (*SnapshotUseCase)(nil)

// NewSnapshotUseCase construye la vista en tiempo real. stockRepo debe estar
// atado al pool (lee la fila autoritativa fuera de transacción).
func NewSnapshotUseCase(stockRepo repository.StockLevelRepository, cache SnapshotCache) *SnapshotUseCase {
	return &SnapshotUseCase{stockRepo: stockRepo, cache: cache}
}

// Refresh lee la fila autoritativa y sobrescribe la entrada del cache.
func (uc *SnapshotUseCase) Refresh(ctx context.Context, productID, locationID string) (*Snapshot, error) {
	level, err := uc.stockRepo.Get(ctx, productID, locationID)
	if err != nil {
		return nil, fmt.Errorf("leer fila de stock: %w", err)
	}
	snap := snapshotFrom(level)
	if err := uc.cache.Set(ctx, snap); err != nil {
		return nil, fmt.Errorf("escribir cache: %w", err)
	}
	return snap, nil
}

// Get devuelve la entrada cacheada; si no existe hace un refresh síncrono.
func (uc *SnapshotUseCase) Get(ctx context.Context, productID, locationID string) (*Snapshot, error) {
	snap, ok, err := uc.cache.Get(ctx, productID, locationID)
	if err == nil && ok {
		return snap, nil
	}
	// Miss (o cache degradado): leer la fila autoritativa.
	return uc.Refresh(ctx, productID, locationID)
}

func snapshotFrom(level *entity.StockLevel) *Snapshot {
	status := level.Status
	if status == "" {
		// Fila creada perezosamente que aún no tiene movimientos.
		status = domaininv.DeriveStatus(level)
	}
	return &Snapshot{
		ProductID:   level.ProductID,
		LocationID:  level.LocationID,
		Available:   level.QuantityAvailable,
		Reserved:    level.QuantityReserved,
		Damaged:     level.QuantityDamaged,
		Total:       level.QuantityAvailable + level.QuantityReserved + level.QuantityDamaged,
		Status:      status,
		LastUpdated: level.UpdatedAt,
	}
}
