package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrUnknownReference  = errors.New("producto no existe en el catálogo")
	ErrInvalidTransfer   = errors.New("traslado inválido")
	ErrInvalidState      = errors.New("transición de estado inválida")
	ErrLockTimeout       = errors.New("no se pudo adquirir el lock de la clave a tiempo")
)
