package repository

import (
	"context"
	"time"

	"github.com/tu-usuario/inventory-core/internal/domain/entity"
)

// MovementFilter criterios de consulta sobre el libro de movimientos.
// Los campos vacíos no filtran.
type MovementFilter struct {
	ProductID       string
	LocationID      string
	Type            string
	ReferenceNumber string
	From            *time.Time
	To              *time.Time
	Limit           int
	Offset          int
}

// MovementRepository define el puerto de persistencia del libro de movimientos.
// Los movimientos son append-only: nunca se actualizan ni se borran.
type MovementRepository interface {
	Create(ctx context.Context, movement *entity.Movement) error
	GetByID(ctx context.Context, id string) (*entity.Movement, error)
	List(ctx context.Context, filter MovementFilter) ([]*entity.Movement, error)
}
