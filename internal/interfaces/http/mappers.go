package http

import (
	"github.com/tu-usuario/inventory-core/internal/application/dto"
	"github.com/tu-usuario/inventory-core/internal/domain/entity"
)

func toMovementResponse(m *entity.Movement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:              m.ID,
		ProductID:       m.ProductID,
		LocationID:      m.LocationID,
		Type:            m.Type,
		QuantityDelta:   m.QuantityDelta,
		UnitCost:        m.UnitCost,
		ReferenceNumber: m.ReferenceNumber,
		Reason:          m.Reason,
		ActorID:         m.ActorID,
		CreatedAt:       m.CreatedAt,
	}
}

func toStockLevelResponse(s *entity.StockLevel) dto.StockLevelResponse {
	return dto.StockLevelResponse{
		ProductID:         s.ProductID,
		LocationID:        s.LocationID,
		QuantityOnHand:    s.QuantityOnHand,
		QuantityAvailable: s.QuantityAvailable,
		QuantityReserved:  s.QuantityReserved,
		QuantityDamaged:   s.QuantityDamaged,
		ReorderPoint:      s.ReorderPoint,
		MaxStockLevel:     s.MaxStockLevel,
		CostPerUnit:       s.CostPerUnit,
		Status:            s.Status,
		LastMovementAt:    s.LastMovementAt,
		UpdatedAt:         s.UpdatedAt,
	}
}

func toReservationResponse(r *entity.Reservation) dto.ReservationResponse {
	return dto.ReservationResponse{
		ID:          r.ID,
		ProductID:   r.ProductID,
		LocationID:  r.LocationID,
		Quantity:    r.Quantity,
		ReservedFor: r.ReservedFor,
		Priority:    r.Priority,
		ExpiresAt:   r.ExpiresAt,
		Status:      r.Status,
		CreatedAt:   r.CreatedAt,
	}
}

func toAlertResponse(a *entity.Alert) dto.AlertResponse {
	return dto.AlertResponse{
		ID:             a.ID,
		ProductID:      a.ProductID,
		LocationID:     a.LocationID,
		Type:           a.Type,
		Severity:       a.Severity,
		Message:        a.Message,
		IsAcknowledged: a.IsAcknowledged,
		CreatedAt:      a.CreatedAt,
		AcknowledgedAt: a.AcknowledgedAt,
		AcknowledgedBy: a.AcknowledgedBy,
	}
}

func toSuggestionResponse(s *entity.ReorderSuggestion) dto.ReorderSuggestionResponse {
	return dto.ReorderSuggestionResponse{
		ID:                s.ID,
		ProductID:         s.ProductID,
		LocationID:        s.LocationID,
		CurrentStock:      s.CurrentStock,
		ReorderPoint:      s.ReorderPoint,
		SuggestedQuantity: s.SuggestedQuantity,
		Priority:          s.Priority,
		CreatedAt:         s.CreatedAt,
	}
}
