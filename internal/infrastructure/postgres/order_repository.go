package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Pagos-api/internal/domain/entity"
	"github.com/jhoicas/Pagos-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo lectura de órdenes completadas para el motor de reportes.
// Las columnas de snapshot de costo son nullables: las líneas legacy
// (anteriores al snapshot) las traen en NULL.
type OrderRepo struct {
	pool *pgxpool.Pool
}

// NewOrderRepository construye el adaptador.
func NewOrderRepository(pool *pgxpool.Pool) *OrderRepo {
	return &OrderRepo{pool: pool}
}

// ListDone devuelve las órdenes en estado "done" del período con sus líneas.
// manufacturerID recorta en la consulta las líneas que ya traen fabricante
// propio; las líneas sin fabricante en la línea se devuelven igual porque su
// identidad se resuelve después contra el maestro de productos.
func (r *OrderRepo) ListDone(ctx context.Context, from, to time.Time, manufacturerID string) ([]entity.Order, error) {
	const query = `
	SELECT
	    o.id, o.customer_id, o.created_at, o.status, o.vat_rate,
	    l.product_id, l.name, l.qty, l.unit_price,
	    l.manufacturer_id, l.manufacturer_name,
	    l.buy_base, l.tier_multiplier, l.buy_unit_price, l.buy_line_total
	FROM orders o
	JOIN order_lines l ON l.order_id = o.id
	WHERE o.status = 'done'
	  AND o.created_at BETWEEN $1 AND $2
	  AND ($3 = '' OR l.manufacturer_id IS NULL OR l.manufacturer_id = $3)
	ORDER BY o.created_at, o.id`

	rows, err := r.pool.Query(ctx, query, from, to, manufacturerID)
	if err != nil {
		return nil, fmt.Errorf("orders.ListDone: %w", err)
	}
	defer rows.Close()

	var orders []entity.Order
	index := make(map[string]int)

	for rows.Next() {
		var (
			o        entity.Order
			line     entity.OrderLine
			custID   *string
			vatRate  *decimal.Decimal
			manID    *string
			manName  *string
			buyBase  *decimal.Decimal
			tierMult *decimal.Decimal
			buyUnit  *decimal.Decimal
			buyTotal *decimal.Decimal
		)
		if err := rows.Scan(
			&o.ID, &custID, &o.CreatedAt, &o.Status, &vatRate,
			&line.ProductID, &line.Name, &line.Qty, &line.UnitPrice,
			&manID, &manName,
			&buyBase, &tierMult, &buyUnit, &buyTotal,
		); err != nil {
			return nil, fmt.Errorf("orders.ListDone scan: %w", err)
		}

		if custID != nil {
			o.CustomerID = *custID
		}
		if manID != nil {
			line.ManufacturerID = *manID
		}
		if manName != nil {
			line.ManufacturerName = *manName
		}
		if buyBase != nil || tierMult != nil || buyUnit != nil || buyTotal != nil {
			line.Snapshot = &entity.CostSnapshot{
				BuyBase:        buyBase,
				TierMultiplier: tierMult,
				BuyUnitPrice:   buyUnit,
				BuyLineTotal:   buyTotal,
			}
		}

		i, ok := index[o.ID]
		if !ok {
			o.VatRate = vatRate
			orders = append(orders, o)
			i = len(orders) - 1
			index[o.ID] = i
		}
		orders[i].Lines = append(orders[i].Lines, line)
	}
	return orders, rows.Err()
}
