package inventory

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/tu-usuario/inventory-core/internal/domain/entity"
	"github.com/tu-usuario/inventory-core/internal/domain/repository"
	"github.com/tu-usuario/inventory-core/pkg/logger"
)

// DefaultReorderPoint umbral de reorden cuando la fila no tiene uno propio.
const DefaultReorderPoint int64 = 10

// AlertEngine evalúa la fila recién mutada contra sus umbrales y emite
// alertas deduplicadas y sugerencias de reposición. Corre como efecto
// post-commit del mutador: sus errores se registran, jamás hacen fallar
// el apply que lo disparó.
//
// Política deliberada: las alertas no se resuelven solas cuando el stock se
// recupera; el reconocimiento es la única vía de resolución.
type AlertEngine struct {
	alertRepo    repository.AlertRepository
	suggRepo     repository.ReorderSuggestionRepository
	catalog      repository.ProductCatalog
	clock        Clock
	log          *logger.Logger
	reorderPoint int64
}

var _ AlertEvaluator = (*AlertEngine)(nil)

// NewAlertEngine construye el motor de alertas. defaultReorderPoint <= 0
// aplica el valor por defecto del paquete.
func NewAlertEngine(
	alertRepo repository.AlertRepository,
	suggRepo repository.ReorderSuggestionRepository,
	catalog repository.ProductCatalog,
	clock Clock,
	log *logger.Logger,
	defaultReorderPoint int64,
) *AlertEngine {
	if defaultReorderPoint <= 0 {
		defaultReorderPoint = DefaultReorderPoint
	}
	return &AlertEngine{
		alertRepo:    alertRepo,
		suggRepo:     suggRepo,
		catalog:      catalog,
		clock:        clock,
		log:          log,
		reorderPoint: defaultReorderPoint,
	}
}

// Evaluate clasifica la fila (OutOfStock > LowStock > Overstock), deduplica
// contra la alerta no reconocida existente de la misma clave y tipo, y crea
// la sugerencia de reposición cuando aplica.
func (e *AlertEngine) Evaluate(ctx context.Context, level *entity.StockLevel) error {
	available := level.QuantityAvailable
	reorder := level.ReorderPoint
	if reorder <= 0 {
		reorder = e.reorderPoint
	}

	var alertType, severity string
	switch {
	case available <= 0:
		alertType, severity = entity.AlertTypeOutOfStock, entity.AlertSeverityCritical
	case available <= reorder:
		alertType, severity = entity.AlertTypeLowStock, entity.AlertSeverityMedium
	case level.MaxStockLevel != nil && available > *level.MaxStockLevel:
		alertType, severity = entity.AlertTypeOverstock, entity.AlertSeverityLow
	default:
		// Sin condición de alerta. Las alertas abiertas se dejan como están.
		return nil
	}

	existing, err := e.alertRepo.FindUnacknowledged(ctx, level.ProductID, level.LocationID, alertType)
	if err != nil {
		return fmt.Errorf("buscar alerta abierta: %w", err)
	}
	if existing == nil {
		alert := &entity.Alert{
			ID:         uuid.New().String(),
			ProductID:  level.ProductID,
			LocationID: level.LocationID,
			Type:       alertType,
			Severity:   severity,
			Message:    e.message(ctx, level, alertType, available, reorder),
			CreatedAt:  e.clock.Now(),
		}
		if err := e.alertRepo.Create(ctx, alert); err != nil {
			return fmt.Errorf("crear alerta: %w", err)
		}
	}

	if alertType == entity.AlertTypeLowStock || alertType == entity.AlertTypeOutOfStock {
		if err := e.createSuggestion(ctx, level, alertType, available, reorder); err != nil {
			return err
		}
	}
	return nil
}

// createSuggestion registra la recomendación de reposición que acompaña a una
// alerta de stock bajo o agotado.
// SuggestedQuantity = max(reorder*2 - available, reorder).
func (e *AlertEngine) createSuggestion(ctx context.Context, level *entity.StockLevel, alertType string, available, reorder int64) error {
	suggested := reorder*2 - available
	if suggested < reorder {
		suggested = reorder
	}
	priority := entity.SuggestionPriorityMedium
	if alertType == entity.AlertTypeOutOfStock {
		priority = entity.SuggestionPriorityHigh
	}

	sugg := &entity.ReorderSuggestion{
		ID:                uuid.New().String(),
		ProductID:         level.ProductID,
		LocationID:        level.LocationID,
		CurrentStock:      available,
		ReorderPoint:      reorder,
		SuggestedQuantity: suggested,
		Priority:          priority,
		CreatedAt:         e.clock.Now(),
	}
	if err := e.suggRepo.Create(ctx, sugg); err != nil {
		return fmt.Errorf("crear sugerencia de reposición: %w", err)
	}
	return nil
}

// message arma el texto de la alerta, enriquecido con el nombre del producto
// si el catálogo responde (best-effort).
func (e *AlertEngine) message(ctx context.Context, level *entity.StockLevel, alertType string, available, reorder int64) string {
	name := level.ProductID
	if n, err := e.catalog.Name(ctx, level.ProductID); err == nil && n != "" {
		name = n
	}
	switch alertType {
	case entity.AlertTypeOutOfStock:
		return fmt.Sprintf("%s agotado en %s", name, level.LocationID)
	case entity.AlertTypeLowStock:
		return fmt.Sprintf("%s bajo en %s: %d disponibles (reorden %d)", name, level.LocationID, available, reorder)
	default:
		return fmt.Sprintf("%s sobre stock máximo en %s: %d disponibles", name, level.LocationID, available)
	}
}

// Acknowledge marca una alerta como reconocida; permite que la próxima
// mutación que cumpla la condición cree una alerta nueva.
func (e *AlertEngine) Acknowledge(ctx context.Context, alertID, actorID string) error {
	return e.alertRepo.Acknowledge(ctx, alertID, actorID)
}

// List devuelve alertas según filtros.
func (e *AlertEngine) List(ctx context.Context, filter repository.AlertFilter) ([]*entity.Alert, error) {
	return e.alertRepo.List(ctx, filter)
}

// ListSuggestions devuelve sugerencias de reposición según filtros.
func (e *AlertEngine) ListSuggestions(ctx context.Context, filter repository.SuggestionFilter) ([]*entity.ReorderSuggestion, error) {
	return e.suggRepo.List(ctx, filter)
}
