package repository

import (
	"context"

	"github.com/jhoicas/Pagos-api/internal/domain/entity"
)

// ProductRepository lectura del maestro de productos.
type ProductRepository interface {
	// GetByIDs devuelve los productos indexados por id. Los ids que no existen
	// simplemente no aparecen en el mapa (la línea quedará con
	// missingProductDoc, no es un error).
	GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Product, error)
}
