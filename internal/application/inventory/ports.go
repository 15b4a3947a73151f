package inventory

import (
	"context"
	"time"

	"github.com/tu-usuario/inventory-core/internal/domain/entity"
	"github.com/tu-usuario/inventory-core/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad fila de stock + movimiento
// (+ reserva cuando aplica) para el motor de inventario.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		stockRepo repository.StockLevelRepository,
		movRepo repository.MovementRepository,
		resRepo repository.ReservationRepository,
	) error) error
}

// Clock fuente de tiempo inyectable (testabilidad de expiraciones y timestamps).
type Clock interface {
	Now() time.Time
}

// SystemClock implementación por defecto sobre time.Now.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Snapshot es la proyección cacheada del stock de una clave (producto, ubicación).
// Derivada y desechable: siempre puede reconstruirse leyendo la fila autoritativa.
type Snapshot struct {
	ProductID   string    `json:"product_id"`
	LocationID  string    `json:"location_id"`
	Available   int64     `json:"available"`
	Reserved    int64     `json:"reserved"`
	Damaged     int64     `json:"damaged"`
	Total       int64     `json:"total"`
	Status      string    `json:"status"`
	LastUpdated time.Time `json:"last_updated"`
}

// SnapshotCache puerto del cache de lectura en tiempo real.
type SnapshotCache interface {
	Get(ctx context.Context, productID, locationID string) (*Snapshot, bool, error)
	Set(ctx context.Context, snapshot *Snapshot) error
}

// SnapshotRefresher refresca la proyección de una clave tras cada mutación
// (efecto post-commit, best-effort).
type SnapshotRefresher interface {
	Refresh(ctx context.Context, productID, locationID string) (*Snapshot, error)
}

// AlertEvaluator evalúa umbrales sobre la fila recién mutada
// (efecto post-commit, best-effort).
type AlertEvaluator interface {
	Evaluate(ctx context.Context, level *entity.StockLevel) error
}
