package entity

import "time"

// Estados de una reserva. Active es el único estado no terminal.
const (
	ReservationStatusActive    = "ACTIVE"
	ReservationStatusReleased  = "RELEASED"
	ReservationStatusExpired   = "EXPIRED"
	ReservationStatusFulfilled = "FULFILLED"
)

// Reservation es una retención de cantidad disponible a favor de un consumidor
// (por ejemplo una orden). Mueve cantidad de disponible a reservado sin tocar
// el stock físico; al cumplirse se convierte en una salida real.
type Reservation struct {
	ID          string
	ProductID   string
	LocationID  string
	Quantity    int64
	ReservedFor string
	Priority    int
	ExpiresAt   *time.Time
	Status      string
	CreatedAt   time.Time
}
