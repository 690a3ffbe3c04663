package repository

import "context"

// ManufacturerRepository directorio de fabricantes (solo presentación).
type ManufacturerRepository interface {
	// Directory devuelve el mapa id → nombre de todos los fabricantes.
	Directory(ctx context.Context) (map[string]string, error)
}
