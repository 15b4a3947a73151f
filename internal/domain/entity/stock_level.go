package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados derivados de un StockLevel. Nunca se asignan directamente:
// se recalculan a partir de las cantidades en cada mutación.
const (
	StockStatusAvailable  = "AVAILABLE"
	StockStatusReserved   = "RESERVED"
	StockStatusDamaged    = "DAMAGED"
	StockStatusQuarantine = "QUARANTINE"
	StockStatusOutOfStock = "OUT_OF_STOCK"
)

// StockLevel representa el stock actual de un producto en una ubicación.
// Invariante: QuantityOnHand == QuantityAvailable + QuantityReserved + QuantityDamaged,
// y las cuatro cantidades son >= 0. Solo el mutador de stock modifica esta fila.
type StockLevel struct {
	ProductID         string
	LocationID        string
	QuantityOnHand    int64
	QuantityAvailable int64
	QuantityReserved  int64
	QuantityDamaged   int64
	ReorderPoint      int64
	MaxStockLevel     *int64
	CostPerUnit       decimal.Decimal
	Status            string
	LastMovementAt    time.Time
	UpdatedAt         time.Time
}

// InvariantOK verifica la identidad de cantidades (útil en tests y reconciliación).
func (s *StockLevel) InvariantOK() bool {
	return s.QuantityOnHand == s.QuantityAvailable+s.QuantityReserved+s.QuantityDamaged &&
		s.QuantityAvailable >= 0 && s.QuantityReserved >= 0 && s.QuantityDamaged >= 0
}
