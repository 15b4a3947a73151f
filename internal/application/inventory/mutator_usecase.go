package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/inventory-core/internal/domain"
	"github.com/tu-usuario/inventory-core/internal/domain/entity"
	domaininv "github.com/tu-usuario/inventory-core/internal/domain/inventory"
	"github.com/tu-usuario/inventory-core/internal/domain/repository"
	"github.com/tu-usuario/inventory-core/pkg/logger"
)

// MovementInput entrada para aplicar un movimiento de inventario.
type MovementInput struct {
	ProductID       string
	LocationID      string
	Type            string
	QuantityDelta   int64
	UnitCost        *decimal.Decimal
	ReferenceNumber string
	Reason          string
	ActorID         string

	// ConsumeReserved marca una salida que consume cantidad reservada en vez
	// de disponible (cumplimiento de reserva). Uso interno del core.
	ConsumeReserved bool
}

// ApplyMovementUseCase es el punto único por el que pasa todo cambio de
// cantidad: valida contra el catálogo, serializa por clave (producto,
// ubicación), aplica la matemática de dominio dentro de una transacción con
// bloqueo de fila y produce exactamente un movimiento por llamada.
type ApplyMovementUseCase struct {
	txRunner    TxRunner
	catalog     repository.ProductCatalog
	locks       *keyedLock
	lockTimeout time.Duration
	clock       Clock
	log         *logger.Logger

	// Efectos post-commit. Su fallo se registra y nunca revierte el movimiento
	// ya confirmado; son reintentos de fuera de banda (reconciliación).
	refresher SnapshotRefresher
	alerts    AlertEvaluator
}

// NewApplyMovementUseCase construye el mutador de stock.
func NewApplyMovementUseCase(
	txRunner TxRunner,
	catalog repository.ProductCatalog,
	clock Clock,
	lockTimeout time.Duration,
	log *logger.Logger,
) *ApplyMovementUseCase {
	return &ApplyMovementUseCase{
		txRunner:    txRunner,
		catalog:     catalog,
		locks:       newKeyedLock(),
		lockTimeout: lockTimeout,
		clock:       clock,
		log:         log,
	}
}

// SetSideEffects conecta el refresco de cache y el motor de alertas
// (se cablean después de construir el mutador para evitar ciclos).
func (uc *ApplyMovementUseCase) SetSideEffects(refresher SnapshotRefresher, alerts AlertEvaluator) {
	uc.refresher = refresher
	uc.alerts = alerts
}

// Apply valida y aplica un movimiento. Devuelve la fila resultante y el
// movimiento creado, o un error de dominio sin haber escrito nada.
func (uc *ApplyMovementUseCase) Apply(ctx context.Context, input MovementInput) (*entity.StockLevel, *entity.Movement, error) {
	return uc.apply(ctx, input, nil)
}

// apply es la variante interna: inTx (opcional) corre dentro de la misma
// transacción, después de persistir fila y movimiento. Lo usa el gestor de
// reservas para crear/transicionar la reserva de forma atómica.
func (uc *ApplyMovementUseCase) apply(
	ctx context.Context,
	input MovementInput,
	inTx func(resRepo repository.ReservationRepository) error,
) (*entity.StockLevel, *entity.Movement, error) {
	if input.ProductID == "" || input.LocationID == "" || input.QuantityDelta == 0 || !entity.ValidMovementType(input.Type) {
		return nil, nil, domain.ErrInvalidInput
	}

	ok, err := uc.catalog.Exists(ctx, input.ProductID)
	if err != nil {
		return nil, nil, fmt.Errorf("consultar catálogo: %w", err)
	}
	if !ok {
		return nil, nil, domain.ErrUnknownReference
	}

	release, err := uc.locks.acquire(ctx, lockKey(input.ProductID, input.LocationID), uc.lockTimeout)
	if err != nil {
		return nil, nil, err
	}
	defer release()

	now := uc.clock.Now()
	var (
		level    *entity.StockLevel
		movement *entity.Movement
	)

	err = uc.txRunner.Run(ctx, func(
		stockRepo repository.StockLevelRepository,
		movRepo repository.MovementRepository,
		resRepo repository.ReservationRepository,
	) error {
		// Bloquea la fila (SELECT FOR UPDATE); se crea perezosamente en ceros
		// si es el primer movimiento de la clave.
		lv, err := stockRepo.GetForUpdate(ctx, input.ProductID, input.LocationID)
		if err != nil {
			return err
		}

		// Entradas con costo propio actualizan el costo promedio ponderado
		// antes de sumar la cantidad.
		if input.Type == entity.MovementTypeInbound && input.UnitCost != nil {
			lv.CostPerUnit = domaininv.WeightedAverageCost(lv.QuantityOnHand, lv.CostPerUnit, input.QuantityDelta, *input.UnitCost)
		}

		if err := domaininv.ApplyMovement(lv, input.Type, input.QuantityDelta, input.ConsumeReserved, now); err != nil {
			return err
		}
		if err := stockRepo.Upsert(ctx, lv); err != nil {
			return err
		}

		mov := &entity.Movement{
			ID:              uuid.New().String(),
			ProductID:       input.ProductID,
			LocationID:      input.LocationID,
			Type:            input.Type,
			QuantityDelta:   input.QuantityDelta,
			UnitCost:        input.UnitCost,
			ReferenceNumber: input.ReferenceNumber,
			Reason:          input.Reason,
			ActorID:         input.ActorID,
			CreatedAt:       now,
		}
		if err := movRepo.Create(ctx, mov); err != nil {
			return err
		}

		if inTx != nil {
			if err := inTx(resRepo); err != nil {
				return err
			}
		}

		level = lv
		movement = mov
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	uc.runSideEffects(ctx, level)
	return level, movement, nil
}

// runSideEffects refresca la proyección y evalúa alertas tras el commit.
// Los fallos se registran y se tragan: el movimiento ya quedó confirmado.
func (uc *ApplyMovementUseCase) runSideEffects(ctx context.Context, level *entity.StockLevel) {
	if uc.refresher != nil {
		if _, err := uc.refresher.Refresh(ctx, level.ProductID, level.LocationID); err != nil {
			uc.log.Warn().Err(err).
				Str("product_id", level.ProductID).
				Str("location_id", level.LocationID).
				Msg("refresco de cache falló tras el commit")
		}
	}
	if uc.alerts != nil {
		if err := uc.alerts.Evaluate(ctx, level); err != nil {
			uc.log.Warn().Err(err).
				Str("product_id", level.ProductID).
				Str("location_id", level.LocationID).
				Msg("evaluación de alertas falló tras el commit")
		}
	}
}
