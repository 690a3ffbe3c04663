package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Pagos-api/internal/domain/entity"
	"github.com/jhoicas/Pagos-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// Límite de ids por consulta de pertenencia del backend; los lotes grandes se
// parten en chunks.
const productChunkSize = 500

// ProductRepo lectura del maestro de productos.
type ProductRepo struct {
	pool *pgxpool.Pool
}

// NewProductRepository construye el adaptador.
func NewProductRepository(pool *pgxpool.Pool) *ProductRepo {
	return &ProductRepo{pool: pool}
}

// GetByIDs devuelve los productos pedidos, indexados por id. Ids inexistentes
// no aparecen en el mapa.
func (r *ProductRepo) GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Product, error) {
	products := make(map[string]*entity.Product, len(ids))
	for start := 0; start < len(ids); start += productChunkSize {
		end := start + productChunkSize
		if end > len(ids) {
			end = len(ids)
		}
		if err := r.fetchChunk(ctx, ids[start:end], products); err != nil {
			return nil, err
		}
	}
	return products, nil
}

func (r *ProductRepo) fetchChunk(ctx context.Context, ids []string, out map[string]*entity.Product) error {
	const query = `
	SELECT id, name, manufacturer_id, manufacturer_name, buy, tier_pricing,
	       created_at, updated_at
	FROM products
	WHERE id = ANY($1)`

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("products.GetByIDs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			p        entity.Product
			manID    *string
			manName  *string
			rawTiers []byte
		)
		if err := rows.Scan(&p.ID, &p.Name, &manID, &manName, &p.Buy, &rawTiers,
			&p.CreatedAt, &p.UpdatedAt); err != nil {
			return fmt.Errorf("products.GetByIDs scan: %w", err)
		}
		if manID != nil {
			p.ManufacturerID = *manID
		}
		if manName != nil {
			p.ManufacturerName = *manName
		}
		if p.TierPricing, err = unmarshalTiers(rawTiers); err != nil {
			return fmt.Errorf("products.GetByIDs producto %s: %w", p.ID, err)
		}
		out[p.ID] = &p
	}
	return rows.Err()
}

// unmarshalTiers decodifica la columna JSONB de bandas de precio.
func unmarshalTiers(raw []byte) ([]entity.PriceTier, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var tiers []entity.PriceTier
	if err := json.Unmarshal(raw, &tiers); err != nil {
		return nil, fmt.Errorf("tier_pricing inválido: %w", err)
	}
	return tiers, nil
}
