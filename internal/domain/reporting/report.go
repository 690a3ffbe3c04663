package reporting

import (
	"time"

	"github.com/shopspring/decimal"
)

// SummaryRow fila del resumen entre fabricantes.
type SummaryRow struct {
	ManufacturerID   string
	ManufacturerName string
	OrdersCount      int
	LinesCount       int
	TotalQty         int64
	TotalToPay       decimal.Decimal
}

// Statement estado de cuenta de un fabricante: solo montos a pagar, sin
// precios de venta ni utilidades (es la vista que ve el fabricante).
type Statement struct {
	ManufacturerID   string
	ManufacturerName string
	Products         []ProductAggregate
	Lines            []NormalizedLine
	TotalToPay       decimal.Decimal
}

// SalesTotals totales globales del reporte interno de ventas.
type SalesTotals struct {
	OrdersCount int
	TotalQty    int64
	Revenue     decimal.Decimal
	Cost        decimal.Decimal
	Profit      decimal.Decimal
	MarginPct   decimal.Decimal
}

// ManufacturerSales ventas internas agregadas por fabricante.
type ManufacturerSales struct {
	ManufacturerID   string
	ManufacturerName string
	OrdersCount      int
	TotalQty         int64
	Revenue          decimal.Decimal
	Cost             decimal.Decimal
	Profit           decimal.Decimal
	MarginPct        decimal.Decimal
}

// ProductSales ventas internas agregadas por producto.
type ProductSales struct {
	ProductID        string
	ProductName      string
	ManufacturerID   string
	ManufacturerName string
	TotalQty         int64
	Revenue          decimal.Decimal
	Cost             decimal.Decimal
	Profit           decimal.Decimal
	MarginPct        decimal.Decimal
}

// SalesReport reporte interno de ingreso/costo/utilidad. Nunca se expone al
// fabricante.
type SalesReport struct {
	Totals         SalesTotals
	ByManufacturer []ManufacturerSales
	ByProduct      []ProductSales
}

// Health contadores de calidad de datos de la corrida. Son advertencias para
// el operador, nunca errores: las líneas afectadas sí entran al reporte con
// sus valores de mejor esfuerzo.
type Health struct {
	LegacyCalcLines          int
	MissingManufacturerLines int
	MissingProductDocLines   int
}

// Report resultado inmutable de una corrida del motor. ID y GeneratedAt son
// metadatos de la corrida y no forman parte del valor comparable: dos
// corridas sobre el mismo insumo y la misma configuración producen el resto
// de campos bit a bit idénticos.
type Report struct {
	ID          string
	GeneratedAt time.Time

	PeriodFrom time.Time
	PeriodTo   time.Time

	Summary    []SummaryRow
	Statements []Statement
	Health     Health
	Sales      SalesReport
}

// StatementFor devuelve el estado de cuenta del fabricante o nil si no tuvo
// movimientos en el período.
func (r *Report) StatementFor(manufacturerID string) *Statement {
	for i := range r.Statements {
		if r.Statements[i].ManufacturerID == manufacturerID {
			return &r.Statements[i]
		}
	}
	return nil
}
