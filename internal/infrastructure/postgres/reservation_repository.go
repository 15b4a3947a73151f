package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/inventory-core/internal/domain/entity"
	"github.com/tu-usuario/inventory-core/internal/domain/repository"
)

var _ repository.ReservationRepository = (*ReservationRepo)(nil)

// ReservationRepo implementación de ReservationRepository sobre PostgreSQL
// (usable con pool o tx).
type ReservationRepo struct {
	q Querier
}

// NewReservationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReservationRepository(q Querier) *ReservationRepo {
	return &ReservationRepo{q: q}
}

const reservationColumns = `
	id, product_id, location_id, quantity, reserved_for, priority,
	expires_at, status, created_at`

// Create persiste una reserva nueva (estado Active).
func (r *ReservationRepo) Create(ctx context.Context, res *entity.Reservation) error {
	query := `
		INSERT INTO reservations (id, product_id, location_id, quantity, reserved_for,
			priority, expires_at, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		res.ID, res.ProductID, res.LocationID, res.Quantity, res.ReservedFor,
		res.Priority, res.ExpiresAt, res.Status, res.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create reservation: %w", err)
	}
	return nil
}

// GetByID obtiene una reserva por ID, o nil si no existe.
func (r *ReservationRepo) GetByID(ctx context.Context, id string) (*entity.Reservation, error) {
	query := `SELECT` + reservationColumns + ` FROM reservations WHERE id = $1`
	var res entity.Reservation
	err := r.q.QueryRow(ctx, query, id).Scan(
		&res.ID, &res.ProductID, &res.LocationID, &res.Quantity, &res.ReservedFor,
		&res.Priority, &res.ExpiresAt, &res.Status, &res.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get reservation: %w", err)
	}
	return &res, nil
}

// UpdateStatus cambia el estado de la reserva (transición terminal).
func (r *ReservationRepo) UpdateStatus(ctx context.Context, id, status string) error {
	query := `UPDATE reservations SET status = $2 WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("update reservation status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update reservation status: reserva %s no existe", id)
	}
	return nil
}

// ListActiveExpiring devuelve las reservas activas con expires_at <= now,
// más antigua primero.
func (r *ReservationRepo) ListActiveExpiring(ctx context.Context, now time.Time) ([]*entity.Reservation, error) {
	query := `SELECT` + reservationColumns + `
		FROM reservations
		WHERE status = $1 AND expires_at IS NOT NULL AND expires_at <= $2
		ORDER BY expires_at ASC`
	rows, err := r.q.Query(ctx, query, entity.ReservationStatusActive, now)
	if err != nil {
		return nil, fmt.Errorf("list expiring reservations: %w", err)
	}
	defer rows.Close()
	var list []*entity.Reservation
	for rows.Next() {
		var res entity.Reservation
		if err := rows.Scan(
			&res.ID, &res.ProductID, &res.LocationID, &res.Quantity, &res.ReservedFor,
			&res.Priority, &res.ExpiresAt, &res.Status, &res.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan reservation: %w", err)
		}
		list = append(list, &res)
	}
	return list, rows.Err()
}
