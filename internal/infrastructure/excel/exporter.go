// Package excel serializa el reporte de pagos a libros xlsx. Las columnas de
// cada hoja son el contrato con contabilidad; el motor solo entrega los datos.
package excel

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/Pagos-api/internal/application/payables"
	"github.com/jhoicas/Pagos-api/internal/domain/reporting"
)

var _ payables.ReportExporter = (*Exporter)(nil)

// Exporter implementa payables.ReportExporter con excelize.
type Exporter struct{}

// NewExporter construye el exportador.
func NewExporter() *Exporter { return &Exporter{} }

// ExportReport genera el libro completo: resumen, detalle de líneas y las
// tres hojas del reporte interno de ventas.
func (e *Exporter) ExportReport(_ context.Context, report *reporting.Report) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeSummarySheet(f, report); err != nil {
		return nil, err
	}
	if err := writeDetailsSheet(f, report); err != nil {
		return nil, err
	}
	if err := writeSalesSheets(f, report); err != nil {
		return nil, err
	}

	// excelize crea "Sheet1" por defecto; el libro arranca en el resumen.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("excel: %w", err)
	}
	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("excel: escribir libro: %w", err)
	}
	return buf.Bytes(), nil
}

// ExportStatement genera el estado de cuenta de un fabricante: hoja de
// productos y hoja de líneas, sin precios de venta.
func (e *Exporter) ExportStatement(_ context.Context, _ *reporting.Report, st *reporting.Statement) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeRows(f, "Statement",
		[]any{"Product", "ProductId", "TotalQty", "TotalToPay"},
		len(st.Products), func(i int) []any {
			p := st.Products[i]
			return []any{p.ProductName, p.ProductID, p.TotalQty, p.TotalToPay.InexactFloat64()}
		}); err != nil {
		return nil, err
	}
	totalRow := len(st.Products) + 2
	if err := setRow(f, "Statement", totalRow, []any{"Total", "", "", st.TotalToPay.InexactFloat64()}); err != nil {
		return nil, err
	}

	if err := writeRows(f, "Lines",
		[]any{"OrderId", "OrderDate", "CustomerId", "Product", "Qty", "BuyUnit", "LineTotal"},
		len(st.Lines), func(i int) []any {
			l := st.Lines[i]
			return []any{
				l.OrderID, l.OrderDate.Format("2006-01-02"), l.CustomerID, l.ProductName,
				l.Qty, l.BuyUnitPrice.InexactFloat64(), l.PayableLineTotal.InexactFloat64(),
			}
		}); err != nil {
		return nil, err
	}

	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("excel: %w", err)
	}
	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("excel: escribir libro: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSummarySheet(f *excelize.File, report *reporting.Report) error {
	return writeRows(f, "Summary",
		[]any{"Manufacturer", "ManufacturerId", "OrdersCount", "LinesCount", "TotalQty", "TotalToPay"},
		len(report.Summary), func(i int) []any {
			r := report.Summary[i]
			return []any{
				r.ManufacturerName, r.ManufacturerID, r.OrdersCount, r.LinesCount,
				r.TotalQty, r.TotalToPay.InexactFloat64(),
			}
		})
}

func writeDetailsSheet(f *excelize.File, report *reporting.Report) error {
	type detail struct {
		manufacturerID, manufacturerName string
		line                             reporting.NormalizedLine
	}
	var details []detail
	for _, st := range report.Statements {
		for _, l := range st.Lines {
			details = append(details, detail{st.ManufacturerID, st.ManufacturerName, l})
		}
	}

	return writeRows(f, "Details",
		[]any{"Manufacturer", "ManufacturerId", "OrderId", "OrderDate", "CustomerId",
			"ProductId", "ProductName", "Qty", "BuyUnit", "LineTotal"},
		len(details), func(i int) []any {
			d := details[i]
			return []any{
				d.manufacturerName, d.manufacturerID, d.line.OrderID,
				d.line.OrderDate.Format("2006-01-02"), d.line.CustomerID,
				d.line.ProductID, d.line.ProductName, d.line.Qty,
				d.line.BuyUnitPrice.InexactFloat64(), d.line.PayableLineTotal.InexactFloat64(),
			}
		})
}

func writeSalesSheets(f *excelize.File, report *reporting.Report) error {
	totals := report.Sales.Totals
	metrics := [][2]any{
		{"OrdersCount", totals.OrdersCount},
		{"Qty", totals.TotalQty},
		{"Revenue", totals.Revenue.InexactFloat64()},
		{"Cost", totals.Cost.InexactFloat64()},
		{"Profit", totals.Profit.InexactFloat64()},
		{"Margin%", totals.MarginPct.InexactFloat64()},
	}
	if err := writeRows(f, "Sales Summary",
		[]any{"Metric", "Value"},
		len(metrics), func(i int) []any {
			return []any{metrics[i][0], metrics[i][1]}
		}); err != nil {
		return err
	}

	if err := writeRows(f, "By Manufacturer",
		[]any{"Manufacturer", "Orders", "Qty", "Revenue", "Cost", "Profit", "Margin%"},
		len(report.Sales.ByManufacturer), func(i int) []any {
			m := report.Sales.ByManufacturer[i]
			return []any{
				m.ManufacturerName, m.OrdersCount, m.TotalQty,
				m.Revenue.InexactFloat64(), m.Cost.InexactFloat64(),
				m.Profit.InexactFloat64(), m.MarginPct.InexactFloat64(),
			}
		}); err != nil {
		return err
	}

	return writeRows(f, "By Product",
		[]any{"Product", "ProductId", "Manufacturer", "Qty", "Revenue", "Cost", "Profit", "Margin%"},
		len(report.Sales.ByProduct), func(i int) []any {
			p := report.Sales.ByProduct[i]
			return []any{
				p.ProductName, p.ProductID, p.ManufacturerName, p.TotalQty,
				p.Revenue.InexactFloat64(), p.Cost.InexactFloat64(),
				p.Profit.InexactFloat64(), p.MarginPct.InexactFloat64(),
			}
		})
}

// writeRows crea la hoja, escribe la fila de encabezados y una fila por dato.
func writeRows(f *excelize.File, sheet string, headers []any, n int, rowAt func(i int) []any) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("excel: hoja %s: %w", sheet, err)
	}
	if err := setRow(f, sheet, 1, headers); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		if err := setRow(f, sheet, i+2, rowAt(i)); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return fmt.Errorf("excel: celda (%d,%d): %w", col+1, row, err)
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return fmt.Errorf("excel: hoja %s celda %s: %w", sheet, cell, err)
		}
	}
	return nil
}
