package inventory

import (
	"time"

	"github.com/tu-usuario/inventory-core/internal/domain"
	"github.com/tu-usuario/inventory-core/internal/domain/entity"
)

// ApplyMovement aplica un delta de cantidad sobre un StockLevel según el tipo
// de movimiento (servicio de dominio puro, sin I/O). Muta la fila en memoria y
// rederiva el estado; el caller persiste bajo el lock de la clave.
//
// Semántica por tipo:
//   - INBOUND / RETURN / TRANSFER_IN: delta > 0, suma disponible y físico.
//   - OUTBOUND / TRANSFER_OUT: delta < 0, resta disponible y físico.
//     Con consumeReserved (cumplimiento de reserva) resta reservado y físico.
//   - ADJUSTMENT / STOCK_TAKE: delta con signo sobre disponible y físico.
//   - RESERVATION: delta < 0, mueve disponible -> reservado (físico intacto).
//   - RELEASE: delta > 0, mueve reservado -> disponible (físico intacto).
//   - DAMAGE: delta < 0, mueve disponible -> dañado (físico intacto).
//
// Devuelve ErrInsufficientStock si el movimiento llevaría alguna cantidad
// por debajo de cero: se rechaza, nunca se recorta.
func ApplyMovement(level *entity.StockLevel, movType string, delta int64, consumeReserved bool, now time.Time) error {
	if delta == 0 || !entity.ValidMovementType(movType) {
		return domain.ErrInvalidInput
	}

	switch movType {
	case entity.MovementTypeInbound, entity.MovementTypeReturn, entity.MovementTypeTransferIn:
		if delta < 0 {
			return domain.ErrInvalidInput
		}
		level.QuantityAvailable += delta
		level.QuantityOnHand += delta

	case entity.MovementTypeOutbound, entity.MovementTypeTransferOut:
		if delta > 0 {
			return domain.ErrInvalidInput
		}
		qty := -delta
		if consumeReserved && movType == entity.MovementTypeOutbound {
			if level.QuantityReserved < qty {
				return domain.ErrInsufficientStock
			}
			level.QuantityReserved -= qty
		} else {
			if level.QuantityAvailable < qty {
				return domain.ErrInsufficientStock
			}
			level.QuantityAvailable -= qty
		}
		level.QuantityOnHand -= qty

	case entity.MovementTypeAdjustment, entity.MovementTypeStockTake:
		if delta < 0 && level.QuantityAvailable < -delta {
			return domain.ErrInsufficientStock
		}
		level.QuantityAvailable += delta
		level.QuantityOnHand += delta

	case entity.MovementTypeReservation:
		if delta > 0 {
			return domain.ErrInvalidInput
		}
		qty := -delta
		if level.QuantityAvailable < qty {
			return domain.ErrInsufficientStock
		}
		level.QuantityAvailable -= qty
		level.QuantityReserved += qty

	case entity.MovementTypeRelease:
		if delta < 0 {
			return domain.ErrInvalidInput
		}
		if level.QuantityReserved < delta {
			return domain.ErrInsufficientStock
		}
		level.QuantityReserved -= delta
		level.QuantityAvailable += delta

	case entity.MovementTypeDamage:
		if delta > 0 {
			return domain.ErrInvalidInput
		}
		qty := -delta
		if level.QuantityAvailable < qty {
			return domain.ErrInsufficientStock
		}
		level.QuantityAvailable -= qty
		level.QuantityDamaged += qty
	}

	level.Status = DeriveStatus(level)
	level.LastMovementAt = now
	level.UpdatedAt = now
	return nil
}

// DeriveStatus recalcula el estado a partir de las cantidades resultantes.
// El estado nunca se asigna de forma independiente.
func DeriveStatus(level *entity.StockLevel) string {
	switch {
	case level.QuantityAvailable == 0 && level.QuantityReserved == 0:
		return entity.StockStatusOutOfStock
	case level.QuantityDamaged > 0 && level.QuantityAvailable == 0:
		return entity.StockStatusDamaged
	default:
		return entity.StockStatusAvailable
	}
}
