package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ErrorResponse cuerpo de error estándar de la API.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ApplyMovementRequest body para POST /api/inventory/movements.
type ApplyMovementRequest struct {
	ProductID       string           `json:"product_id"`
	LocationID      string           `json:"location_id"`
	Type            string           `json:"type"`
	QuantityDelta   int64            `json:"quantity_delta"`
	UnitCost        *decimal.Decimal `json:"unit_cost,omitempty"`
	ReferenceNumber string           `json:"reference_number,omitempty"`
	Reason          string           `json:"reason"`
	ActorID         string           `json:"actor_id,omitempty"`
}

// MovementResponse un movimiento del libro.
type MovementResponse struct {
	ID              string           `json:"id"`
	ProductID       string           `json:"product_id"`
	LocationID      string           `json:"location_id"`
	Type            string           `json:"type"`
	QuantityDelta   int64            `json:"quantity_delta"`
	UnitCost        *decimal.Decimal `json:"unit_cost,omitempty"`
	ReferenceNumber string           `json:"reference_number,omitempty"`
	Reason          string           `json:"reason"`
	ActorID         string           `json:"actor_id,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
}

// StockLevelResponse la fila de stock resultante de una mutación.
type StockLevelResponse struct {
	ProductID         string          `json:"product_id"`
	LocationID        string          `json:"location_id"`
	QuantityOnHand    int64           `json:"quantity_on_hand"`
	QuantityAvailable int64           `json:"quantity_available"`
	QuantityReserved  int64           `json:"quantity_reserved"`
	QuantityDamaged   int64           `json:"quantity_damaged"`
	ReorderPoint      int64           `json:"reorder_point"`
	MaxStockLevel     *int64          `json:"max_stock_level,omitempty"`
	CostPerUnit       decimal.Decimal `json:"cost_per_unit"`
	Status            string          `json:"status"`
	LastMovementAt    time.Time       `json:"last_movement_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// TransferRequest body para POST /api/inventory/transfers.
type TransferRequest struct {
	ProductID      string `json:"product_id"`
	FromLocationID string `json:"from_location_id"`
	ToLocationID   string `json:"to_location_id"`
	Quantity       int64  `json:"quantity"`
	Reason         string `json:"reason"`
	ActorID        string `json:"actor_id,omitempty"`
}

// TransferResponse las dos mitades de un traslado exitoso.
type TransferResponse struct {
	ReferenceNumber string           `json:"reference_number"`
	Outbound        MovementResponse `json:"outbound"`
	Inbound         MovementResponse `json:"inbound"`
}

// ReserveRequest body para POST /api/inventory/reservations.
type ReserveRequest struct {
	ProductID   string     `json:"product_id"`
	LocationID  string     `json:"location_id"`
	Quantity    int64      `json:"quantity"`
	ReservedFor string     `json:"reserved_for"`
	Priority    int        `json:"priority,omitempty"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	ActorID     string     `json:"actor_id,omitempty"`
}

// ReservationResponse una reserva.
type ReservationResponse struct {
	ID          string     `json:"id"`
	ProductID   string     `json:"product_id"`
	LocationID  string     `json:"location_id"`
	Quantity    int64      `json:"quantity"`
	ReservedFor string     `json:"reserved_for"`
	Priority    int        `json:"priority"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
}

// ReleaseReservationRequest body para POST /api/inventory/reservations/:id/release.
type ReleaseReservationRequest struct {
	Reason string `json:"reason"`
}

// AcknowledgeAlertRequest body para POST /api/inventory/alerts/:id/ack.
type AcknowledgeAlertRequest struct {
	ActorID string `json:"actor_id"`
}

// AlertResponse una alerta de stock.
type AlertResponse struct {
	ID             string     `json:"id"`
	ProductID      string     `json:"product_id"`
	LocationID     string     `json:"location_id"`
	Type           string     `json:"type"`
	Severity       string     `json:"severity"`
	Message        string     `json:"message"`
	IsAcknowledged bool       `json:"is_acknowledged"`
	CreatedAt      time.Time  `json:"created_at"`
	AcknowledgedAt *time.Time `json:"acknowledged_at,omitempty"`
	AcknowledgedBy string     `json:"acknowledged_by,omitempty"`
}

// ReorderSuggestionResponse una sugerencia de reposición.
type ReorderSuggestionResponse struct {
	ID                string    `json:"id"`
	ProductID         string    `json:"product_id"`
	LocationID        string    `json:"location_id"`
	CurrentStock      int64     `json:"current_stock"`
	ReorderPoint      int64     `json:"reorder_point"`
	SuggestedQuantity int64     `json:"suggested_quantity"`
	Priority          string    `json:"priority"`
	CreatedAt         time.Time `json:"created_at"`
}
