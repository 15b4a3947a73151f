package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/inventory-core/internal/domain/entity"
	"github.com/tu-usuario/inventory-core/internal/domain/repository"
)

var _ repository.ReorderSuggestionRepository = (*ReorderSuggestionRepo)(nil)

// ReorderSuggestionRepo implementación sobre PostgreSQL. Solo inserta y lista:
// las sugerencias son efímeras, las nuevas reemplazan a las viejas en consulta
// (orden descendente por fecha), no en fila.
type ReorderSuggestionRepo struct {
	q Querier
}

// NewReorderSuggestionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReorderSuggestionRepository(q Querier) *ReorderSuggestionRepo {
	return &ReorderSuggestionRepo{q: q}
}

// Create persiste una sugerencia de reposición.
func (r *ReorderSuggestionRepo) Create(ctx context.Context, s *entity.ReorderSuggestion) error {
	query := `
		INSERT INTO reorder_suggestions (id, product_id, location_id, current_stock,
			reorder_point, suggested_quantity, priority, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.ProductID, s.LocationID, s.CurrentStock,
		s.ReorderPoint, s.SuggestedQuantity, s.Priority, s.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create reorder suggestion: %w", err)
	}
	return nil
}

// List consulta sugerencias, más reciente primero.
func (r *ReorderSuggestionRepo) List(ctx context.Context, f repository.SuggestionFilter) ([]*entity.ReorderSuggestion, error) {
	query := `
		SELECT id, product_id, location_id, current_stock, reorder_point,
			suggested_quantity, priority, created_at
		FROM reorder_suggestions WHERE 1=1`
	args := []any{}
	pos := 1
	if f.ProductID != "" {
		query += fmt.Sprintf(" AND product_id = $%d", pos)
		args = append(args, f.ProductID)
		pos++
	}
	if f.LocationID != "" {
		query += fmt.Sprintf(" AND location_id = $%d", pos)
		args = append(args, f.LocationID)
		pos++
	}

	limit := f.Limit
	if limit <= 0 {
		limit = 100
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, f.Offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list reorder suggestions: %w", err)
	}
	defer rows.Close()
	var list []*entity.ReorderSuggestion
	for rows.Next() {
		var s entity.ReorderSuggestion
		if err := rows.Scan(
			&s.ID, &s.ProductID, &s.LocationID, &s.CurrentStock, &s.ReorderPoint,
			&s.SuggestedQuantity, &s.Priority, &s.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan reorder suggestion: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
