package reporting

import (
	"sort"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

func sortStable[T any](s []T, less func(a, b T) bool) {
	sort.SliceStable(s, func(i, j int) bool { return less(s[i], s[j]) })
}

// Los montos se redondean a 2 decimales exactamente una vez: al colocarlos en
// una de las tres estructuras de salida (resumen, estado de cuenta, reporte
// de ventas). El fold siempre acumula a precisión completa.

// BuildSummary produce una fila por fabricante, ordenada por la clave y la
// dirección configuradas. Los empates se rompen por id de fabricante para que
// la salida sea determinista.
func BuildSummary(agg *Aggregates, sortBy SortKey, dir SortDir) []SummaryRow {
	rows := make([]SummaryRow, 0, len(agg.Manufacturers))
	for _, m := range agg.Manufacturers {
		rows = append(rows, SummaryRow{
			ManufacturerID:   m.ManufacturerID,
			ManufacturerName: m.ManufacturerName,
			OrdersCount:      len(m.OrderIDs),
			LinesCount:       m.LinesCount,
			TotalQty:         m.TotalQty,
			TotalToPay:       m.TotalToPay.Round(2),
		})
	}
	sortSummary(rows, sortBy, dir)
	return rows
}

func sortSummary(rows []SummaryRow, sortBy SortKey, dir SortDir) {
	less := func(a, b SummaryRow) int {
		switch sortBy {
		case SortByTotalToPay:
			return a.TotalToPay.Cmp(b.TotalToPay)
		case SortByTotalQty:
			return compareInt64(a.TotalQty, b.TotalQty)
		case SortByOrdersCount:
			return compareInt64(int64(a.OrdersCount), int64(b.OrdersCount))
		default:
			return compareString(a.ManufacturerName, b.ManufacturerName)
		}
	}
	sortStable(rows, func(a, b SummaryRow) bool {
		c := less(a, b)
		if c == 0 {
			// desempate determinista, siempre ascendente
			return a.ManufacturerID < b.ManufacturerID
		}
		if dir == SortDesc {
			return c > 0
		}
		return c < 0
	})
}

// BuildStatements arma el estado de cuenta de cada fabricante: productos en
// orden descendente por monto a pagar, líneas en orden (nombre de fabricante,
// fecha de orden) ascendente. El total coincide con la fila del resumen.
func BuildStatements(agg *Aggregates) []Statement {
	statements := make([]Statement, 0, len(agg.Manufacturers))
	for manID, m := range agg.Manufacturers {
		st := Statement{
			ManufacturerID:   m.ManufacturerID,
			ManufacturerName: m.ManufacturerName,
			TotalToPay:       m.TotalToPay.Round(2),
		}

		for _, p := range agg.Products[manID] {
			st.Products = append(st.Products, ProductAggregate{
				ProductID:   p.ProductID,
				ProductName: p.ProductName,
				TotalQty:    p.TotalQty,
				TotalToPay:  p.TotalToPay.Round(2),
			})
		}
		sortStable(st.Products, func(a, b ProductAggregate) bool {
			c := a.TotalToPay.Cmp(b.TotalToPay)
			if c == 0 {
				return a.ProductID < b.ProductID
			}
			return c > 0
		})

		st.Lines = make([]NormalizedLine, len(agg.Lines[manID]))
		copy(st.Lines, agg.Lines[manID])
		for i := range st.Lines {
			st.Lines[i] = roundLine(st.Lines[i])
		}
		sortStable(st.Lines, func(a, b NormalizedLine) bool {
			if a.ManufacturerName != b.ManufacturerName {
				return a.ManufacturerName < b.ManufacturerName
			}
			if !a.OrderDate.Equal(b.OrderDate) {
				return a.OrderDate.Before(b.OrderDate)
			}
			return a.OrderID < b.OrderID
		})

		statements = append(statements, st)
	}

	sortStable(statements, func(a, b Statement) bool {
		if a.ManufacturerName != b.ManufacturerName {
			return a.ManufacturerName < b.ManufacturerName
		}
		return a.ManufacturerID < b.ManufacturerID
	})
	return statements
}

// BuildSalesReport arma el reporte interno: totales globales y desgloses por
// fabricante y por producto, ambos descendentes por utilidad.
func BuildSalesReport(agg *Aggregates) SalesReport {
	var totalQty int64
	var revenue, cost decimal.Decimal
	for _, s := range agg.SalesByManufacturer {
		totalQty += s.TotalQty
		revenue = revenue.Add(s.Revenue)
		cost = cost.Add(s.Cost)
	}
	profit := revenue.Sub(cost)

	report := SalesReport{
		Totals: SalesTotals{
			OrdersCount: len(agg.OrderIDs),
			TotalQty:    totalQty,
			Revenue:     revenue.Round(2),
			Cost:        cost.Round(2),
			Profit:      profit.Round(2),
			MarginPct:   marginPct(profit, revenue),
		},
	}

	for _, s := range agg.SalesByManufacturer {
		p := s.Revenue.Sub(s.Cost)
		report.ByManufacturer = append(report.ByManufacturer, ManufacturerSales{
			ManufacturerID:   s.ID,
			ManufacturerName: s.Name,
			OrdersCount:      len(s.OrderIDs),
			TotalQty:         s.TotalQty,
			Revenue:          s.Revenue.Round(2),
			Cost:             s.Cost.Round(2),
			Profit:           p.Round(2),
			MarginPct:        marginPct(p, s.Revenue),
		})
	}
	sortStable(report.ByManufacturer, func(a, b ManufacturerSales) bool {
		c := a.Profit.Cmp(b.Profit)
		if c == 0 {
			return a.ManufacturerID < b.ManufacturerID
		}
		return c > 0
	})

	for _, s := range agg.SalesByProduct {
		p := s.Revenue.Sub(s.Cost)
		report.ByProduct = append(report.ByProduct, ProductSales{
			ProductID:        s.ID,
			ProductName:      s.Name,
			ManufacturerID:   s.ManufacturerID,
			ManufacturerName: s.ManufacturerName,
			TotalQty:         s.TotalQty,
			Revenue:          s.Revenue.Round(2),
			Cost:             s.Cost.Round(2),
			Profit:           p.Round(2),
			MarginPct:        marginPct(p, s.Revenue),
		})
	}
	sortStable(report.ByProduct, func(a, b ProductSales) bool {
		c := a.Profit.Cmp(b.Profit)
		if c == 0 {
			return a.ProductID < b.ProductID
		}
		return c > 0
	})

	return report
}

// marginPct utilidad como porcentaje del ingreso; 0 cuando no hubo ingreso.
func marginPct(profit, revenue decimal.Decimal) decimal.Decimal {
	if !revenue.IsPositive() {
		return decimal.Zero
	}
	return profit.Div(revenue).Mul(hundred).Round(2)
}

// roundLine redondea los montos de una línea al colocarla en la salida.
func roundLine(nl NormalizedLine) NormalizedLine {
	nl.SellUnitPrice = nl.SellUnitPrice.Round(2)
	nl.SellLineTotal = nl.SellLineTotal.Round(2)
	nl.BuyBase = nl.BuyBase.Round(2)
	nl.BuyUnitPrice = nl.BuyUnitPrice.Round(2)
	nl.BuyLineTotal = nl.BuyLineTotal.Round(2)
	nl.PayableLineTotal = nl.PayableLineTotal.Round(2)
	return nl
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareString(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
