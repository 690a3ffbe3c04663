package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Pagos-api/internal/domain/entity"
	"github.com/jhoicas/Pagos-api/internal/domain/repository"
)

var _ repository.ReportRunRepository = (*ReportRunRepo)(nil)

// ReportRunRepo persiste la auditoría de corridas del reporte.
type ReportRunRepo struct {
	pool *pgxpool.Pool
}

// NewReportRunRepository construye el adaptador.
func NewReportRunRepository(pool *pgxpool.Pool) *ReportRunRepo {
	return &ReportRunRepo{pool: pool}
}

// Create inserta el registro de la corrida.
func (r *ReportRunRepo) Create(ctx context.Context, run *entity.ReportRun) error {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	const query = `
	INSERT INTO report_runs (
	    id, period_from, period_to, manufacturer_filter, cost_basis, vat_on_buy,
	    orders_count, lines_count, legacy_calc_lines, missing_manufacturer_lines,
	    missing_product_doc_lines, duration_ms, created_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err := r.pool.Exec(ctx, query,
		run.ID, run.PeriodFrom, run.PeriodTo, nullIfEmpty(run.ManufacturerFilter),
		run.CostBasis, run.VatOnBuy,
		run.OrdersCount, run.LinesCount, run.LegacyCalcLines, run.MissingManufacturers,
		run.MissingProducts, run.DurationMs, run.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert report run: %w", err)
	}
	return nil
}
