package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/inventory-core/internal/domain/repository"
)

var _ repository.ProductCatalog = (*ProductCatalog)(nil)

// ProductCatalog adaptador de solo lectura sobre la tabla products del ERP.
// El catálogo es un colaborador externo al core: aquí solo se valida
// existencia y se lee el nombre para los mensajes de alerta.
type ProductCatalog struct {
	q Querier
}

// NewProductCatalog construye el adaptador. Pasar pool o tx (Querier).
func NewProductCatalog(q Querier) *ProductCatalog {
	return &ProductCatalog{q: q}
}

// Exists indica si el producto está en el catálogo.
func (c *ProductCatalog) Exists(ctx context.Context, productID string) (bool, error) {
	var exists bool
	err := c.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`, productID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("product exists: %w", err)
	}
	return exists, nil
}

// Name devuelve el nombre del producto, o cadena vacía si no existe.
func (c *ProductCatalog) Name(ctx context.Context, productID string) (string, error) {
	var name string
	err := c.q.QueryRow(ctx, `SELECT name FROM products WHERE id = $1`, productID).Scan(&name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("product name: %w", err)
	}
	return name, nil
}
