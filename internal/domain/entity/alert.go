package entity

import "time"

// Tipos de alerta de stock.
const (
	AlertTypeLowStock   = "LOW_STOCK"
	AlertTypeOutOfStock = "OUT_OF_STOCK"
	AlertTypeExpiring   = "EXPIRING"
	AlertTypeOverstock  = "OVERSTOCK"
)

// Severidades de alerta.
const (
	AlertSeverityLow      = "LOW"
	AlertSeverityMedium   = "MEDIUM"
	AlertSeverityHigh     = "HIGH"
	AlertSeverityCritical = "CRITICAL"
)

// Alert es un registro derivado que se crea tras una mutación de stock.
// Invariante: a lo sumo una alerta NO reconocida por (producto, ubicación, tipo).
// Solo el reconocimiento la muta; nunca se borra (queda como traza de auditoría).
type Alert struct {
	ID             string
	ProductID      string
	LocationID     string
	Type           string
	Severity       string
	Message        string
	IsAcknowledged bool
	CreatedAt      time.Time
	AcknowledgedAt *time.Time
	AcknowledgedBy string
}
