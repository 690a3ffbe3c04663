package reporting

import (
	"context"
	"time"

	"github.com/jhoicas/Pagos-api/internal/domain/entity"
)

// BuildReport corre el pipeline completo sobre un snapshot en memoria:
// normalización → política de pago → fold → armado de vistas. No realiza I/O
// ni guarda estado entre corridas; corridas concurrentes con configuraciones
// distintas sobre el mismo snapshot no interfieren entre sí.
//
// orders debe venir ya filtrado a estado terminal por el colaborador externo;
// el motor re-verifica estado, período y filtro de fabricante. products va
// indexado por id; directory es el mapa id → nombre de fabricante.
//
// La cancelación se revisa entre órdenes: si el contexto se cancela, la
// corrida falla completa — nunca se devuelve un reporte parcial.
func BuildReport(ctx context.Context, orders []entity.Order, products map[string]*entity.Product, directory map[string]string, cfg Config) (*Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()
	from, to := cfg.PeriodBounds()

	agg := NewAggregates()
	var health Health

	for _, order := range orders {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if order.Status != entity.OrderStatusDone {
			continue
		}
		if order.CreatedAt.Before(from) || order.CreatedAt.After(to) {
			continue
		}

		for _, line := range order.Lines {
			nl := NormalizeLine(order, line, products[line.ProductID], directory, cfg.DefaultVatRate)
			if cfg.ManufacturerID != "" && nl.ManufacturerID != cfg.ManufacturerID {
				continue
			}
			nl = ApplyPayablePolicy(nl, cfg)

			if nl.IsLegacyCalc {
				health.LegacyCalcLines++
			}
			if nl.MissingManufacturerID {
				health.MissingManufacturerLines++
			}
			if nl.MissingProductDoc {
				health.MissingProductDocLines++
			}

			agg.Fold(nl)
		}
	}

	return &Report{
		GeneratedAt: time.Now(),
		PeriodFrom:  from,
		PeriodTo:    to,
		Summary:     BuildSummary(agg, cfg.SortBy, cfg.SortDir),
		Statements:  BuildStatements(agg),
		Health:      health,
		Sales:       BuildSalesReport(agg),
	}, nil
}
