package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario.
const (
	MovementTypeInbound     = "INBOUND"      // entrada (compra, recepción)
	MovementTypeOutbound    = "OUTBOUND"     // salida (venta, consumo)
	MovementTypeAdjustment  = "ADJUSTMENT"   // ajuste con signo
	MovementTypeTransferOut = "TRANSFER_OUT" // salida por traslado
	MovementTypeTransferIn  = "TRANSFER_IN"  // entrada por traslado
	MovementTypeReservation = "RESERVATION"  // disponible -> reservado
	MovementTypeRelease     = "RELEASE"      // reservado -> disponible
	MovementTypeReturn      = "RETURN"       // devolución de cliente
	MovementTypeDamage      = "DAMAGE"       // disponible -> dañado
	MovementTypeStockTake   = "STOCK_TAKE"   // corrección por conteo físico
)

// Movement es una entrada inmutable del libro de movimientos: un cambio de
// cantidad y su causa. Las correcciones son movimientos nuevos que compensan,
// nunca updates sobre filas existentes.
type Movement struct {
	ID              string
	ProductID       string
	LocationID      string
	Type            string
	QuantityDelta   int64
	UnitCost        *decimal.Decimal
	ReferenceNumber string // correlaciona las dos mitades de un traslado u órdenes externas
	Reason          string
	ActorID         string
	CreatedAt       time.Time
}

// ValidMovementType indica si el tipo pertenece al conjunto cerrado de tipos.
func ValidMovementType(t string) bool {
	switch t {
	case MovementTypeInbound, MovementTypeOutbound, MovementTypeAdjustment,
		MovementTypeTransferOut, MovementTypeTransferIn,
		MovementTypeReservation, MovementTypeRelease,
		MovementTypeReturn, MovementTypeDamage, MovementTypeStockTake:
		return true
	}
	return false
}
