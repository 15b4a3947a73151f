package entity

import "time"

// Prioridades de sugerencia de reposición.
const (
	SuggestionPriorityMedium = "MEDIUM"
	SuggestionPriorityHigh   = "HIGH"
)

// ReorderSuggestion es una recomendación efímera de reposición creada junto a
// una alerta LowStock/OutOfStock. No se actualiza: sugerencias nuevas
// reemplazan a las anteriores.
type ReorderSuggestion struct {
	ID                string
	ProductID         string
	LocationID        string
	CurrentStock      int64
	ReorderPoint      int64
	SuggestedQuantity int64
	Priority          string
	CreatedAt         time.Time
}
