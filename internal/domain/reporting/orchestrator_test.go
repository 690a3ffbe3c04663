package reporting_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Pagos-api/internal/domain"
	"github.com/jhoicas/Pagos-api/internal/domain/entity"
	"github.com/jhoicas/Pagos-api/internal/domain/reporting"
)

// ──────────────────────────────────────────────────────────────────────────────
// BuildReport corre el pipeline completo. El escenario de referencia mezcla
// los tres tipos de línea que existen en producción:
//
//   - con snapshot completo (autoritativa)
//   - legacy sin snapshot, con maestro (recalcula con banda)
//   - sin fabricante resoluble (cae al bucket "unknown")
// ──────────────────────────────────────────────────────────────────────────────

func configPeriodoMarzo() reporting.Config {
	return reporting.Config{
		From:           time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		To:             time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
		DefaultVatRate: dec("0.19"),
	}
}

func maestroDePrueba() map[string]*entity.Product {
	return map[string]*entity.Product{
		"prod-a": {
			ID: "prod-a", Name: "Tornillo M8",
			ManufacturerID: "fab-1", ManufacturerName: "Aceros del Norte",
			Buy: dec("10"), TierPricing: tablaCanonica(),
		},
		"prod-b": {
			ID: "prod-b", Name: "Lija 220",
			ManufacturerID: "fab-2", ManufacturerName: "Abrasivos SA",
			Buy: dec("4"),
		},
	}
}

func ordenesDePrueba() []entity.Order {
	marzo := func(dia int) time.Time {
		return time.Date(2026, 3, dia, 12, 0, 0, 0, time.UTC)
	}
	return []entity.Order{
		{
			// Línea con snapshot: costo pactado 8/uni, total 80.
			ID: "ord-1", CustomerID: "cli-1", CreatedAt: marzo(5), Status: entity.OrderStatusDone,
			Lines: []entity.OrderLine{{
				ProductID: "prod-a", Name: "Tornillo M8", Qty: 10, UnitPrice: dec("20"),
				ManufacturerID: "fab-1", ManufacturerName: "Aceros del Norte",
				Snapshot: &entity.CostSnapshot{
					BuyBase:        decPtr("10"),
					TierMultiplier: decPtr("0.8"),
					BuyUnitPrice:   decPtr("8"),
					BuyLineTotal:   decPtr("80"),
				},
			}},
		},
		{
			// Línea legacy: base 10 × banda 0.9 × 10 → 90.
			ID: "ord-2", CustomerID: "cli-2", CreatedAt: marzo(10), Status: entity.OrderStatusDone,
			Lines: []entity.OrderLine{{
				ProductID: "prod-a", Qty: 10, UnitPrice: dec("20"),
			}},
		},
		{
			// Dos líneas: una de fab-2 y una sin fabricante resoluble.
			ID: "ord-3", CustomerID: "cli-3", CreatedAt: marzo(20), Status: entity.OrderStatusDone,
			Lines: []entity.OrderLine{
				{ProductID: "prod-b", Qty: 5, UnitPrice: dec("6")},
				{ProductID: "prod-borrado", Qty: 2, UnitPrice: dec("15")},
			},
		},
		{
			// Cancelada: no debe entrar jamás.
			ID: "ord-4", CreatedAt: marzo(15), Status: entity.OrderStatusCancelled,
			Lines: []entity.OrderLine{{ProductID: "prod-a", Qty: 100, UnitPrice: dec("20")}},
		},
		{
			// Fuera del período.
			ID: "ord-5", CreatedAt: time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC), Status: entity.OrderStatusDone,
			Lines: []entity.OrderLine{{ProductID: "prod-a", Qty: 1, UnitPrice: dec("20")}},
		},
	}
}

func construir(t *testing.T, cfg reporting.Config) *reporting.Report {
	t.Helper()
	rep, err := reporting.BuildReport(context.Background(), ordenesDePrueba(), maestroDePrueba(), nil, cfg)
	require.NoError(t, err)
	return rep
}

func TestBuildReport_EscenarioCompleto(t *testing.T) {
	rep := construir(t, configPeriodoMarzo())

	// Tres fabricantes: fab-1, fab-2 y el bucket "unknown".
	require.Len(t, rep.Summary, 3)

	porID := make(map[string]reporting.SummaryRow)
	for _, row := range rep.Summary {
		porID[row.ManufacturerID] = row
	}

	fab1 := porID["fab-1"]
	assert.Equal(t, 2, fab1.OrdersCount)
	assert.Equal(t, int64(20), fab1.TotalQty)
	assert.True(t, dec("170").Equal(fab1.TotalToPay), "snapshot 80 + legacy 90 = 170, obtuvo %s", fab1.TotalToPay)

	fab2 := porID["fab-2"]
	assert.True(t, dec("20").Equal(fab2.TotalToPay), "legacy sin bandas: 4 × 5 = 20")

	desconocido := porID[reporting.UnknownManufacturerID]
	assert.Equal(t, reporting.UnknownManufacturerName, desconocido.ManufacturerName)
	assert.True(t, desconocido.TotalToPay.IsZero(), "sin fuentes de costo no hay monto a pagar")
	assert.Equal(t, int64(2), desconocido.TotalQty)
}

func TestBuildReport_ExcluyeCanceladasYFueraDePeriodo(t *testing.T) {
	rep := construir(t, configPeriodoMarzo())

	assert.Equal(t, 3, rep.Sales.Totals.OrdersCount, "solo ord-1, ord-2 y ord-3 entran")
	for _, st := range rep.Statements {
		for _, nl := range st.Lines {
			assert.NotEqual(t, "ord-4", nl.OrderID, "una orden cancelada nunca entra")
			assert.NotEqual(t, "ord-5", nl.OrderID, "una orden fuera del período nunca entra")
		}
	}
}

// TestBuildReport_PeriodoInclusivoPorDia verifica que los límites se llevan a
// frontera de día: una orden a las 12:00 del día To sí entra.
func TestBuildReport_PeriodoInclusivoPorDia(t *testing.T) {
	cfg := configPeriodoMarzo()
	cfg.From = time.Date(2026, 3, 20, 18, 0, 0, 0, time.UTC) // hora tardía
	cfg.To = cfg.From

	rep := construir(t, cfg)

	// ord-3 es del 20 de marzo a las 12:00, antes de la hora del From crudo.
	assert.Equal(t, 1, rep.Sales.Totals.OrdersCount,
		"el From se normaliza al inicio del día: ord-3 debe entrar")
}

func TestBuildReport_PeriodoInvalido(t *testing.T) {
	cfg := configPeriodoMarzo()
	cfg.From, cfg.To = cfg.To, cfg.From

	_, err := reporting.BuildReport(context.Background(), nil, nil, nil, cfg)

	assert.ErrorIs(t, err, domain.ErrInvalidPeriod)
}

func TestBuildReport_CancelacionDelContexto(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rep, err := reporting.BuildReport(ctx, ordenesDePrueba(), maestroDePrueba(), nil, configPeriodoMarzo())

	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, rep, "nunca se devuelve un reporte parcial")
}

func TestBuildReport_FiltroPorFabricante(t *testing.T) {
	cfg := configPeriodoMarzo()
	cfg.ManufacturerID = "fab-2"

	rep := construir(t, cfg)

	require.Len(t, rep.Summary, 1)
	assert.Equal(t, "fab-2", rep.Summary[0].ManufacturerID)
	require.Len(t, rep.Statements, 1)
}

func TestBuildReport_ContadoresDeSalud(t *testing.T) {
	rep := construir(t, configPeriodoMarzo())

	assert.Equal(t, 2, rep.Health.LegacyCalcLines, "ord-2 y la línea de prod-b")
	assert.Equal(t, 1, rep.Health.MissingManufacturerLines)
	assert.Equal(t, 1, rep.Health.MissingProductDocLines)
}

// ── Conciliación ──────────────────────────────────────────────────────────────

// TestBuildReport_Conciliacion verifica la invariante contable: el total del
// estado de cuenta coincide con la suma de sus productos y con la fila del
// resumen, dentro de 0.01 por redondeo.
func TestBuildReport_Conciliacion(t *testing.T) {
	rep := construir(t, configPeriodoMarzo())

	tolerancia := dec("0.01")
	porID := make(map[string]reporting.SummaryRow)
	for _, row := range rep.Summary {
		porID[row.ManufacturerID] = row
	}

	for _, st := range rep.Statements {
		var sumaProductos, sumaLineas decimal.Decimal
		for _, p := range st.Products {
			sumaProductos = sumaProductos.Add(p.TotalToPay)
		}
		for _, nl := range st.Lines {
			sumaLineas = sumaLineas.Add(nl.PayableLineTotal)
		}

		assert.True(t, st.TotalToPay.Sub(sumaProductos).Abs().LessThanOrEqual(tolerancia),
			"%s: total %s vs suma de productos %s", st.ManufacturerID, st.TotalToPay, sumaProductos)
		assert.True(t, st.TotalToPay.Sub(sumaLineas).Abs().LessThanOrEqual(tolerancia),
			"%s: total %s vs suma de líneas %s", st.ManufacturerID, st.TotalToPay, sumaLineas)
		assert.True(t, porID[st.ManufacturerID].TotalToPay.Equal(st.TotalToPay),
			"%s: el resumen y el estado de cuenta deben coincidir", st.ManufacturerID)
	}
}

// TestBuildReport_Idempotente verifica que dos corridas con el mismo insumo
// producen el mismo valor (excluyendo ID y GeneratedAt, que son metadatos).
func TestBuildReport_Idempotente(t *testing.T) {
	rep1 := construir(t, configPeriodoMarzo())
	rep2 := construir(t, configPeriodoMarzo())

	rep2.ID = rep1.ID
	rep2.GeneratedAt = rep1.GeneratedAt
	assert.Equal(t, rep1, rep2)
}

// ── Ordenamiento ──────────────────────────────────────────────────────────────

func TestBuildReport_OrdenPorDefectoNombreAscendente(t *testing.T) {
	rep := construir(t, configPeriodoMarzo())

	require.Len(t, rep.Summary, 3)
	assert.Equal(t, "Abrasivos SA", rep.Summary[0].ManufacturerName)
	assert.Equal(t, "Aceros del Norte", rep.Summary[1].ManufacturerName)
	assert.Equal(t, reporting.UnknownManufacturerName, rep.Summary[2].ManufacturerName)
}

func TestBuildReport_OrdenPorMontoDescendente(t *testing.T) {
	cfg := configPeriodoMarzo()
	cfg.SortBy = reporting.SortByTotalToPay
	cfg.SortDir = reporting.SortDesc

	rep := construir(t, cfg)

	require.Len(t, rep.Summary, 3)
	assert.Equal(t, "fab-1", rep.Summary[0].ManufacturerID, "170 primero")
	assert.Equal(t, "fab-2", rep.Summary[1].ManufacturerID, "luego 20")
	assert.Equal(t, reporting.UnknownManufacturerID, rep.Summary[2].ManufacturerID)
}

func TestBuildReport_EstadosDeCuentaOrdenadosPorNombre(t *testing.T) {
	rep := construir(t, configPeriodoMarzo())

	require.Len(t, rep.Statements, 3)
	for i := 1; i < len(rep.Statements); i++ {
		assert.LessOrEqual(t, rep.Statements[i-1].ManufacturerName, rep.Statements[i].ManufacturerName)
	}
}

// ── Reporte interno de ventas ─────────────────────────────────────────────────

func TestBuildReport_VentasTotalesYMargen(t *testing.T) {
	rep := construir(t, configPeriodoMarzo())

	// Ingreso: 200 (ord-1) + 200 (ord-2) + 30 + 30 (ord-3) = 460.
	// Costo:    80        + 90         + 20 + 0          = 190.
	totales := rep.Sales.Totals
	assert.True(t, dec("460").Equal(totales.Revenue), "ingreso, obtuvo %s", totales.Revenue)
	assert.True(t, dec("190").Equal(totales.Cost), "costo, obtuvo %s", totales.Cost)
	assert.True(t, dec("270").Equal(totales.Profit))
	// 270 / 460 × 100 = 58.6956... → 58.70
	assert.True(t, dec("58.70").Equal(totales.MarginPct), "margen, obtuvo %s", totales.MarginPct)
}

func TestBuildReport_VentasPorFabricanteDescendentePorUtilidad(t *testing.T) {
	rep := construir(t, configPeriodoMarzo())

	require.Len(t, rep.Sales.ByManufacturer, 3)
	for i := 1; i < len(rep.Sales.ByManufacturer); i++ {
		prev := rep.Sales.ByManufacturer[i-1].Profit
		cur := rep.Sales.ByManufacturer[i].Profit
		assert.True(t, prev.GreaterThanOrEqual(cur), "descendente por utilidad")
	}
}

func TestBuildReport_MargenCeroSinIngreso(t *testing.T) {
	// Una sola línea con precio de venta cero: margen 0, no división por cero.
	ordenes := []entity.Order{{
		ID: "ord-regalo", CreatedAt: time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC),
		Status: entity.OrderStatusDone,
		Lines:  []entity.OrderLine{{ProductID: "prod-a", Qty: 1, UnitPrice: decimal.Zero}},
	}}

	rep, err := reporting.BuildReport(context.Background(), ordenes, maestroDePrueba(), nil, configPeriodoMarzo())

	require.NoError(t, err)
	assert.True(t, rep.Sales.Totals.MarginPct.IsZero())
}

// ── StatementFor ──────────────────────────────────────────────────────────────

func TestStatementFor(t *testing.T) {
	rep := construir(t, configPeriodoMarzo())

	st := rep.StatementFor("fab-1")
	require.NotNil(t, st)
	assert.Equal(t, "Aceros del Norte", st.ManufacturerName)

	assert.Nil(t, rep.StatementFor("fab-inexistente"))
}
