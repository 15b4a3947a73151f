package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/inventory-core/internal/domain/entity"
	"github.com/tu-usuario/inventory-core/internal/domain/repository"
)

var _ repository.StockLevelRepository = (*StockLevelRepo)(nil)

// StockLevelRepo implementación de StockLevelRepository sobre PostgreSQL
// (usable con pool o tx).
type StockLevelRepo struct {
	q Querier
}

// NewStockLevelRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockLevelRepository(q Querier) *StockLevelRepo {
	return &StockLevelRepo{q: q}
}

const stockLevelColumns = `
	product_id, location_id, quantity_on_hand, quantity_available,
	quantity_reserved, quantity_damaged, reorder_point, max_stock_level,
	cost_per_unit, status, last_movement_at, updated_at`

// Get obtiene la fila actual; devuelve una fila en ceros si aún no existe.
func (r *StockLevelRepo) Get(ctx context.Context, productID, locationID string) (*entity.StockLevel, error) {
	query := `SELECT` + stockLevelColumns + `
		FROM stock_levels WHERE product_id = $1 AND location_id = $2`
	level, err := r.scanOne(r.q.QueryRow(ctx, query, productID, locationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return zeroLevel(productID, locationID), nil
		}
		return nil, fmt.Errorf("get stock level: %w", err)
	}
	return level, nil
}

// GetForUpdate bloquea la fila para escritura (SELECT FOR UPDATE). Si la
// clave no existe todavía, inserta la fila en ceros primero para que el lock
// tenga fila que sostener (creación perezosa bajo concurrencia).
func (r *StockLevelRepo) GetForUpdate(ctx context.Context, productID, locationID string) (*entity.StockLevel, error) {
	insert := `
		INSERT INTO stock_levels (product_id, location_id, quantity_on_hand, quantity_available,
			quantity_reserved, quantity_damaged, reorder_point, cost_per_unit, status, last_movement_at, updated_at)
		VALUES ($1, $2, 0, 0, 0, 0, 0, 0, $3, now(), now())
		ON CONFLICT (product_id, location_id) DO NOTHING`
	if _, err := r.q.Exec(ctx, insert, productID, locationID, entity.StockStatusOutOfStock); err != nil {
		return nil, fmt.Errorf("seed stock level: %w", err)
	}

	query := `SELECT` + stockLevelColumns + `
		FROM stock_levels WHERE product_id = $1 AND location_id = $2
		FOR UPDATE`
	level, err := r.scanOne(r.q.QueryRow(ctx, query, productID, locationID))
	if err != nil {
		return nil, fmt.Errorf("get stock level for update: %w", err)
	}
	return level, nil
}

// Upsert inserta o reemplaza la fila completa (por producto y ubicación).
func (r *StockLevelRepo) Upsert(ctx context.Context, level *entity.StockLevel) error {
	query := `
		INSERT INTO stock_levels (product_id, location_id, quantity_on_hand, quantity_available,
			quantity_reserved, quantity_damaged, reorder_point, max_stock_level, cost_per_unit,
			status, last_movement_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, now())
		ON CONFLICT (product_id, location_id) DO UPDATE SET
			quantity_on_hand = EXCLUDED.quantity_on_hand,
			quantity_available = EXCLUDED.quantity_available,
			quantity_reserved = EXCLUDED.quantity_reserved,
			quantity_damaged = EXCLUDED.quantity_damaged,
			reorder_point = EXCLUDED.reorder_point,
			max_stock_level = EXCLUDED.max_stock_level,
			cost_per_unit = EXCLUDED.cost_per_unit,
			status = EXCLUDED.status,
			last_movement_at = EXCLUDED.last_movement_at,
			updated_at = now()`
	_, err := r.q.Exec(ctx, query,
		level.ProductID, level.LocationID, level.QuantityOnHand, level.QuantityAvailable,
		level.QuantityReserved, level.QuantityDamaged, level.ReorderPoint, level.MaxStockLevel,
		level.CostPerUnit, level.Status, level.LastMovementAt,
	)
	if err != nil {
		return fmt.Errorf("upsert stock level: %w", err)
	}
	return nil
}

// ListByLocation lista las filas de una ubicación, más reciente primero.
func (r *StockLevelRepo) ListByLocation(ctx context.Context, locationID string, limit, offset int) ([]*entity.StockLevel, error) {
	query := `SELECT` + stockLevelColumns + `
		FROM stock_levels WHERE location_id = $1
		ORDER BY updated_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, locationID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock levels: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockLevel
	for rows.Next() {
		level, err := r.scanOne(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock level: %w", err)
		}
		list = append(list, level)
	}
	return list, rows.Err()
}

func (r *StockLevelRepo) scanOne(row pgx.Row) (*entity.StockLevel, error) {
	var s entity.StockLevel
	err := row.Scan(
		&s.ProductID, &s.LocationID, &s.QuantityOnHand, &s.QuantityAvailable,
		&s.QuantityReserved, &s.QuantityDamaged, &s.ReorderPoint, &s.MaxStockLevel,
		&s.CostPerUnit, &s.Status, &s.LastMovementAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func zeroLevel(productID, locationID string) *entity.StockLevel {
	return &entity.StockLevel{
		ProductID:   productID,
		LocationID:  locationID,
		CostPerUnit: decimal.Zero,
		Status:      entity.StockStatusOutOfStock,
	}
}
