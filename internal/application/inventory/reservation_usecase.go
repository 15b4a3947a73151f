package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/inventory-core/internal/domain"
	"github.com/tu-usuario/inventory-core/internal/domain/entity"
	"github.com/tu-usuario/inventory-core/internal/domain/repository"
	"github.com/tu-usuario/inventory-core/pkg/logger"
)

// ReserveInput entrada para crear una reserva.
type ReserveInput struct {
	ProductID   string
	LocationID  string
	Quantity    int64
	ReservedFor string
	Priority    int
	ExpiresAt   *time.Time
	ActorID     string
}

// ReservationUseCase gestiona la máquina de estados de reservas:
// Active -> {Released | Expired | Fulfilled}, todos terminales. Cada
// transición produce su movimiento a través del mutador, en la misma
// transacción que el cambio de estado de la reserva.
type ReservationUseCase struct {
	mutator *ApplyMovementUseCase
	resRepo repository.ReservationRepository
	clock   Clock
	log     *logger.Logger
}

// NewReservationUseCase construye el gestor de reservas. resRepo debe estar
// atado al pool (lecturas fuera de transacción).
func NewReservationUseCase(
	mutator *ApplyMovementUseCase,
	resRepo repository.ReservationRepository,
	clock Clock,
	log *logger.Logger,
) *ReservationUseCase {
	return &ReservationUseCase{mutator: mutator, resRepo: resRepo, clock: clock, log: log}
}

// Reserve retiene quantity unidades contra el disponible de la clave.
// La disponibilidad se revalida bajo el lock de la clave dentro del apply;
// la fila de reserva se crea en la misma transacción que el movimiento.
func (uc *ReservationUseCase) Reserve(ctx context.Context, input ReserveInput) (*entity.Reservation, error) {
	if input.ProductID == "" || input.LocationID == "" || input.Quantity <= 0 || input.ReservedFor == "" {
		return nil, domain.ErrInvalidInput
	}

	res := &entity.Reservation{
		ID:          uuid.New().String(),
		ProductID:   input.ProductID,
		LocationID:  input.LocationID,
		Quantity:    input.Quantity,
		ReservedFor: input.ReservedFor,
		Priority:    input.Priority,
		ExpiresAt:   input.ExpiresAt,
		Status:      entity.ReservationStatusActive,
		CreatedAt:   uc.clock.Now(),
	}

	_, _, err := uc.mutator.apply(ctx, MovementInput{
		ProductID:       input.ProductID,
		LocationID:      input.LocationID,
		Type:            entity.MovementTypeReservation,
		QuantityDelta:   -input.Quantity,
		ReferenceNumber: input.ReservedFor,
		Reason:          fmt.Sprintf("reserva para %s", input.ReservedFor),
		ActorID:         input.ActorID,
	}, func(resRepo repository.ReservationRepository) error {
		return resRepo.Create(ctx, res)
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Release cancela una reserva activa y devuelve la cantidad al disponible.
func (uc *ReservationUseCase) Release(ctx context.Context, reservationID, reason string) error {
	return uc.transition(ctx, reservationID, entity.ReservationStatusReleased, entity.MovementTypeRelease, reason)
}

// Fulfill convierte una reserva activa en una salida real: la cantidad ya
// salió del disponible al reservar, así que solo baja reservado y físico.
func (uc *ReservationUseCase) Fulfill(ctx context.Context, reservationID string) error {
	return uc.transition(ctx, reservationID, entity.ReservationStatusFulfilled, entity.MovementTypeOutbound, "cumplimiento de reserva")
}

// transition ejecuta una transición terminal. El estado se verifica de nuevo
// dentro de la transacción (bajo el lock de la clave) para que dos llamadas
// concurrentes sobre la misma reserva no produzcan doble movimiento.
func (uc *ReservationUseCase) transition(ctx context.Context, reservationID, targetStatus, movType, reason string) error {
	res, err := uc.resRepo.GetByID(ctx, reservationID)
	if err != nil {
		return err
	}
	if res == nil {
		return domain.ErrNotFound
	}
	if res.Status != entity.ReservationStatusActive {
		return domain.ErrInvalidState
	}

	delta := res.Quantity
	consumeReserved := false
	if movType == entity.MovementTypeOutbound {
		delta = -res.Quantity
		consumeReserved = true
	}

	_, _, err = uc.mutator.apply(ctx, MovementInput{
		ProductID:       res.ProductID,
		LocationID:      res.LocationID,
		Type:            movType,
		QuantityDelta:   delta,
		ReferenceNumber: res.ReservedFor,
		Reason:          reason,
		ConsumeReserved: consumeReserved,
	}, func(resRepo repository.ReservationRepository) error {
		current, err := resRepo.GetByID(ctx, reservationID)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.ErrNotFound
		}
		if current.Status != entity.ReservationStatusActive {
			return domain.ErrInvalidState
		}
		return resRepo.UpdateStatus(ctx, reservationID, targetStatus)
	})
	return err
}

// ExpireDue libera todas las reservas activas vencidas a la fecha dada.
// Idempotente y re-ejecutable: una reserva que falla se registra y no bloquea
// la expiración del resto. Devuelve cuántas se expiraron.
func (uc *ReservationUseCase) ExpireDue(ctx context.Context, now time.Time) (int, error) {
	due, err := uc.resRepo.ListActiveExpiring(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("listar reservas vencidas: %w", err)
	}

	expired := 0
	for _, res := range due {
		err := uc.transition(ctx, res.ID, entity.ReservationStatusExpired, entity.MovementTypeRelease, "reserva expirada")
		if err != nil {
			uc.log.Warn().Err(err).
				Str("reservation_id", res.ID).
				Str("product_id", res.ProductID).
				Msg("no se pudo expirar la reserva; se continúa con las demás")
			continue
		}
		expired++
	}
	return expired, nil
}
