package repository

import (
	"context"
	"time"

	"github.com/tu-usuario/inventory-core/internal/domain/entity"
)

// ReservationRepository define el puerto de persistencia para reservas.
type ReservationRepository interface {
	Create(ctx context.Context, reservation *entity.Reservation) error
	GetByID(ctx context.Context, id string) (*entity.Reservation, error)

	// UpdateStatus cambia el estado de una reserva (transiciones terminales).
	UpdateStatus(ctx context.Context, id, status string) error

	// ListActiveExpiring devuelve las reservas activas con expires_at <= now.
	ListActiveExpiring(ctx context.Context, now time.Time) ([]*entity.Reservation, error)
}
