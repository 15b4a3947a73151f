package repository

import (
	"context"

	"github.com/tu-usuario/inventory-core/internal/domain/entity"
)

// AlertFilter criterios de consulta de alertas. Los campos vacíos no filtran.
type AlertFilter struct {
	ProductID      string
	LocationID     string
	Type           string
	OnlyUnacked    bool
	Limit          int
	Offset         int
}

// AlertRepository define el puerto de persistencia para alertas de stock.
// Las alertas nunca se borran; el reconocimiento es la única mutación.
type AlertRepository interface {
	Create(ctx context.Context, alert *entity.Alert) error
	GetByID(ctx context.Context, id string) (*entity.Alert, error)

	// FindUnacknowledged devuelve la alerta NO reconocida de la clave y tipo,
	// o nil si no existe (soporta la deduplicación del motor de alertas).
	FindUnacknowledged(ctx context.Context, productID, locationID, alertType string) (*entity.Alert, error)

	List(ctx context.Context, filter AlertFilter) ([]*entity.Alert, error)
	Acknowledge(ctx context.Context, id, actorID string) error
}

// SuggestionFilter criterios de consulta de sugerencias de reposición.
type SuggestionFilter struct {
	ProductID  string
	LocationID string
	Limit      int
	Offset     int
}

// ReorderSuggestionRepository define el puerto para sugerencias de reposición.
// Solo creación y lectura: las sugerencias nuevas reemplazan a las anteriores.
type ReorderSuggestionRepository interface {
	Create(ctx context.Context, suggestion *entity.ReorderSuggestion) error
	List(ctx context.Context, filter SuggestionFilter) ([]*entity.ReorderSuggestion, error)
}
