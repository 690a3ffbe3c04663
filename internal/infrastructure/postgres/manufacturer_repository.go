package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Pagos-api/internal/domain/repository"
)

var _ repository.ManufacturerRepository = (*ManufacturerRepo)(nil)

// ManufacturerRepo directorio de fabricantes (solo lectura, solo presentación).
type ManufacturerRepo struct {
	pool *pgxpool.Pool
}

// NewManufacturerRepository construye el adaptador.
func NewManufacturerRepository(pool *pgxpool.Pool) *ManufacturerRepo {
	return &ManufacturerRepo{pool: pool}
}

// Directory devuelve el mapa id → nombre de todos los fabricantes.
func (r *ManufacturerRepo) Directory(ctx context.Context) (map[string]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name FROM manufacturers`)
	if err != nil {
		return nil, fmt.Errorf("manufacturers.Directory: %w", err)
	}
	defer rows.Close()

	directory := make(map[string]string)
	for rows.Next() {
		var id, name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("manufacturers.Directory scan: %w", err)
		}
		directory[id] = name
	}
	return directory, rows.Err()
}
