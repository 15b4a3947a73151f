package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/inventory-core/internal/domain"
	"github.com/tu-usuario/inventory-core/internal/domain/entity"
	"github.com/tu-usuario/inventory-core/internal/domain/repository"
)

var _ repository.AlertRepository = (*AlertRepo)(nil)

// AlertRepo implementación de AlertRepository sobre PostgreSQL.
// La tabla lleva un índice único parcial sobre
// (product_id, location_id, type) WHERE NOT is_acknowledged, que respalda la
// deduplicación del motor de alertas también entre instancias.
type AlertRepo struct {
	q Querier
}

// NewAlertRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAlertRepository(q Querier) *AlertRepo {
	return &AlertRepo{q: q}
}

const alertColumns = `
	id, product_id, location_id, type, severity, message,
	is_acknowledged, created_at, acknowledged_at, acknowledged_by`

// Create persiste una alerta nueva. Una violación del índice único parcial
// significa que otra instancia creó la alerta primero: se trata como éxito
// (la deduplicación ganó la carrera).
func (r *AlertRepo) Create(ctx context.Context, a *entity.Alert) error {
	query := `
		INSERT INTO alerts (id, product_id, location_id, type, severity, message,
			is_acknowledged, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, false, $7)`
	_, err := r.q.Exec(ctx, query,
		a.ID, a.ProductID, a.LocationID, a.Type, a.Severity, a.Message, a.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil
		}
		return fmt.Errorf("create alert: %w", err)
	}
	return nil
}

// GetByID obtiene una alerta por ID, o nil si no existe.
func (r *AlertRepo) GetByID(ctx context.Context, id string) (*entity.Alert, error) {
	query := `SELECT` + alertColumns + ` FROM alerts WHERE id = $1`
	a, err := r.scanOne(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get alert: %w", err)
	}
	return a, nil
}

// FindUnacknowledged devuelve la alerta no reconocida de la clave y tipo,
// o nil si no hay.
func (r *AlertRepo) FindUnacknowledged(ctx context.Context, productID, locationID, alertType string) (*entity.Alert, error) {
	query := `SELECT` + alertColumns + `
		FROM alerts
		WHERE product_id = $1 AND location_id = $2 AND type = $3 AND NOT is_acknowledged`
	a, err := r.scanOne(r.q.QueryRow(ctx, query, productID, locationID, alertType))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find unacknowledged alert: %w", err)
	}
	return a, nil
}

// List consulta alertas según filtros; los campos vacíos no filtran.
func (r *AlertRepo) List(ctx context.Context, f repository.AlertFilter) ([]*entity.Alert, error) {
	query := `SELECT` + alertColumns + ` FROM alerts WHERE 1=1`
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
	if f.OnlyUnacked {
		query += " AND NOT is_acknowledged"
	}

	limit := f.Limit
	if limit <= 0 {
		limit = 100
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, f.Offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list alerts: %w", err)
	}
	defer rows.Close()
	var list []*entity.Alert
	for rows.Next() {
		a, err := r.scanOne(rows)
		if err != nil {
			return nil, fmt.Errorf("scan alert: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

// Acknowledge marca la alerta como reconocida. ErrNotFound si no existe o ya
// estaba reconocida.
func (r *AlertRepo) Acknowledge(ctx context.Context, id, actorID string) error {
	query := `
		UPDATE alerts
		SET is_acknowledged = true, acknowledged_at = now(), acknowledged_by = $2
		WHERE id = $1 AND NOT is_acknowledged`
	tag, err := r.q.Exec(ctx, query, id, actorID)
	if err != nil {
		return fmt.Errorf("acknowledge alert: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *AlertRepo) scanOne(row pgx.Row) (*entity.Alert, error) {
	var a entity.Alert
	var ackBy *string
	err := row.Scan(
		&a.ID, &a.ProductID, &a.LocationID, &a.Type, &a.Severity, &a.Message,
		&a.IsAcknowledged, &a.CreatedAt, &a.AcknowledgedAt, &ackBy,
	)
	if err != nil {
		return nil, err
	}
	if ackBy != nil {
		a.AcknowledgedBy = *ackBy
	}
	return &a, nil
}
