package excel_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/Pagos-api/internal/domain/reporting"
	"github.com/jhoicas/Pagos-api/internal/infrastructure/excel"
)

// Las hojas y sus columnas son el contrato con contabilidad: el test abre el
// libro generado y verifica estructura y algunos valores, no cada celda.

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func reporteDePrueba() *reporting.Report {
	fecha := time.Date(2026, 3, 5, 12, 0, 0, 0, time.UTC)
	linea := reporting.NormalizedLine{
		OrderID: "ord-1", OrderDate: fecha, CustomerID: "cli-1",
		ProductID: "prod-a", ProductName: "Tornillo M8", Qty: 10,
		ManufacturerID: "fab-1", ManufacturerName: "Aceros del Norte",
		BuyUnitPrice: dec("8"), BuyLineTotal: dec("80"), PayableLineTotal: dec("80"),
	}
	return &reporting.Report{
		ID:         "rep-1",
		PeriodFrom: fecha, PeriodTo: fecha.AddDate(0, 0, 26),
		Summary: []reporting.SummaryRow{{
			ManufacturerID: "fab-1", ManufacturerName: "Aceros del Norte",
			OrdersCount: 1, LinesCount: 1, TotalQty: 10, TotalToPay: dec("80"),
		}},
		Statements: []reporting.Statement{{
			ManufacturerID: "fab-1", ManufacturerName: "Aceros del Norte",
			Products: []reporting.ProductAggregate{{
				ProductID: "prod-a", ProductName: "Tornillo M8", TotalQty: 10, TotalToPay: dec("80"),
			}},
			Lines:      []reporting.NormalizedLine{linea},
			TotalToPay: dec("80"),
		}},
		Sales: reporting.SalesReport{
			Totals: reporting.SalesTotals{
				OrdersCount: 1, TotalQty: 10,
				Revenue: dec("200"), Cost: dec("80"), Profit: dec("120"), MarginPct: dec("60"),
			},
			ByManufacturer: []reporting.ManufacturerSales{{
				ManufacturerID: "fab-1", ManufacturerName: "Aceros del Norte",
				OrdersCount: 1, TotalQty: 10,
				Revenue: dec("200"), Cost: dec("80"), Profit: dec("120"), MarginPct: dec("60"),
			}},
			ByProduct: []reporting.ProductSales{{
				ProductID: "prod-a", ProductName: "Tornillo M8",
				ManufacturerID: "fab-1", ManufacturerName: "Aceros del Norte",
				TotalQty: 10, Revenue: dec("200"), Cost: dec("80"), Profit: dec("120"), MarginPct: dec("60"),
			}},
		},
	}
}

func abrirLibro(t *testing.T, data []byte) *excelize.File {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err, "el libro generado debe ser un xlsx legible")
	t.Cleanup(func() { f.Close() })
	return f
}

func TestExportReport_HojasDelContrato(t *testing.T) {
	exp := excel.NewExporter()

	data, err := exp.ExportReport(context.Background(), reporteDePrueba())
	require.NoError(t, err)

	f := abrirLibro(t, data)
	assert.Equal(t,
		[]string{"Summary", "Details", "Sales Summary", "By Manufacturer", "By Product"},
		f.GetSheetList())
}

func TestExportReport_ResumenConMontos(t *testing.T) {
	exp := excel.NewExporter()

	data, err := exp.ExportReport(context.Background(), reporteDePrueba())
	require.NoError(t, err)
	f := abrirLibro(t, data)

	nombre, err := f.GetCellValue("Summary", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Aceros del Norte", nombre)

	monto, err := f.GetCellValue("Summary", "F2")
	require.NoError(t, err)
	assert.Equal(t, "80", monto)
}

func TestExportReport_DetalleSinPrecioDeVenta(t *testing.T) {
	exp := excel.NewExporter()

	data, err := exp.ExportReport(context.Background(), reporteDePrueba())
	require.NoError(t, err)
	f := abrirLibro(t, data)

	filas, err := f.GetRows("Details")
	require.NoError(t, err)
	require.Len(t, filas, 2, "encabezado + una línea")
	for _, celda := range filas[0] {
		assert.NotContains(t, celda, "Sell", "el detalle de pagos no expone precios de venta")
	}
}

func TestExportStatement_TotalAlPie(t *testing.T) {
	exp := excel.NewExporter()
	rep := reporteDePrueba()

	data, err := exp.ExportStatement(context.Background(), rep, &rep.Statements[0])
	require.NoError(t, err)
	f := abrirLibro(t, data)

	assert.Equal(t, []string{"Statement", "Lines"}, f.GetSheetList())

	// Productos en la fila 2; el total una fila más abajo.
	etiqueta, err := f.GetCellValue("Statement", "A3")
	require.NoError(t, err)
	assert.Equal(t, "Total", etiqueta)

	total, err := f.GetCellValue("Statement", "D3")
	require.NoError(t, err)
	assert.Equal(t, "80", total)
}
