package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/inventory-core/internal/domain/entity"
	"github.com/tu-usuario/inventory-core/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación del libro de movimientos sobre PostgreSQL
// (usable con pool o tx). La tabla es append-only.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

const movementColumns = `
	id, product_id, location_id, type, quantity_delta, unit_cost,
	reference_number, reason, actor_id, created_at`

// Create persiste un movimiento.
func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	query := `
		INSERT INTO movements (id, product_id, location_id, type, quantity_delta, unit_cost,
			reference_number, reason, actor_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	refNum := (*string)(nil)
	if m.ReferenceNumber != "" {
		refNum = &m.ReferenceNumber
	}
	actorID := (*string)(nil)
	if m.ActorID != "" {
		actorID = &m.ActorID
	}
	_, err := r.q.Exec(ctx, query,
		m.ID, m.ProductID, m.LocationID, m.Type, m.QuantityDelta, m.UnitCost,
		refNum, m.Reason, actorID, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID, o nil si no existe.
func (r *MovementRepo) GetByID(ctx context.Context, id string) (*entity.Movement, error) {
	query := `SELECT` + movementColumns + ` FROM movements WHERE id = $1`
	m, err := r.scanOne(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return m, nil
}

// List consulta el libro según filtros; los campos vacíos no filtran.
func (r *MovementRepo) List(ctx context.Context, f repository.MovementFilter) ([]*entity.Movement, error) {
	query := `SELECT` + movementColumns + ` FROM movements WHERE 1=1`
	args := []any{}
	pos := 1

	add := func(cond string, val any) {
		query += fmt.Sprintf(" AND "+cond, pos)
		args = append(args, val)
		pos++
	}
	if f.ProductID != "" {
		add("product_id = $%d", f.ProductID)
	}
	if f.LocationID != "" {
		add("location_id = $%d", f.LocationID)
	}
	if f.Type != "" {
		add("type = $%d", f.Type)
	}
	if f.ReferenceNumber != "" {
		add("reference_number = $%d", f.ReferenceNumber)
	}
	if f.From != nil {
		add("created_at >= $%d", *f.From)
	}
	if f.To != nil {
		add("created_at <= $%d", *f.To)
	}

	limit := f.Limit
	if limit <= 0 {
		limit = 100
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, f.Offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.Movement
	for rows.Next() {
		m, err := r.scanOne(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

func (r *MovementRepo) scanOne(row pgx.Row) (*entity.Movement, error) {
	var m entity.Movement
	var refNum, actorID *string
	err := row.Scan(
		&m.ID, &m.ProductID, &m.LocationID, &m.Type, &m.QuantityDelta, &m.UnitCost,
		&refNum, &m.Reason, &actorID, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if refNum != nil {
		m.ReferenceNumber = *refNum
	}
	if actorID != nil {
		m.ActorID = *actorID
	}
	return &m, nil
}
