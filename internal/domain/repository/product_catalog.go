package repository

import "context"

// ProductCatalog es el puerto hacia el catálogo de productos (colaborador
// externo al core). Se usa para validar movimientos y enriquecer mensajes
// de alerta; un fallo aquí hace fallar el apply.
type ProductCatalog interface {
	Exists(ctx context.Context, productID string) (bool, error)
	Name(ctx context.Context, productID string) (string, error)
}
