package payables

import (
	"github.com/jhoicas/Pagos-api/internal/application/dto"
	"github.com/jhoicas/Pagos-api/internal/domain/reporting"
)

func toReportDTO(r *reporting.Report) *dto.ReportDTO {
	out := &dto.ReportDTO{
		ID:          r.ID,
		GeneratedAt: r.GeneratedAt,
		Period: dto.PeriodDTO{
			StartDate: r.PeriodFrom.Format("2006-01-02"),
			EndDate:   r.PeriodTo.Format("2006-01-02"),
		},
		Summary: make([]dto.SummaryRowDTO, 0, len(r.Summary)),
		Health: dto.HealthDTO{
			LegacyCalcLines:          r.Health.LegacyCalcLines,
			MissingManufacturerLines: r.Health.MissingManufacturerLines,
			MissingProductDocLines:   r.Health.MissingProductDocLines,
		},
		Sales: toSalesReportDTO(r.Sales),
	}

	for _, row := range r.Summary {
		out.Summary = append(out.Summary, dto.SummaryRowDTO{
			ManufacturerID:   row.ManufacturerID,
			ManufacturerName: row.ManufacturerName,
			OrdersCount:      row.OrdersCount,
			LinesCount:       row.LinesCount,
			TotalQty:         row.TotalQty,
			TotalToPay:       row.TotalToPay,
		})
	}

	out.Statements = make([]dto.StatementDTO, 0, len(r.Statements))
	for _, st := range r.Statements {
		out.Statements = append(out.Statements, toStatementDTO(st))
	}
	return out
}

func toStatementDTO(st reporting.Statement) dto.StatementDTO {
	out := dto.StatementDTO{
		ManufacturerID:   st.ManufacturerID,
		ManufacturerName: st.ManufacturerName,
		Products:         make([]dto.StatementProductDTO, 0, len(st.Products)),
		Lines:            make([]dto.StatementLineDTO, 0, len(st.Lines)),
		TotalToPay:       st.TotalToPay,
	}
	for _, p := range st.Products {
		out.Products = append(out.Products, dto.StatementProductDTO{
			ProductID:   p.ProductID,
			ProductName: p.ProductName,
			TotalQty:    p.TotalQty,
			TotalToPay:  p.TotalToPay,
		})
	}
	for _, l := range st.Lines {
		// Vista de pagos: sin precio de venta ni utilidad.
		out.Lines = append(out.Lines, dto.StatementLineDTO{
			OrderID:      l.OrderID,
			OrderDate:    l.OrderDate,
			CustomerID:   l.CustomerID,
			ProductID:    l.ProductID,
			ProductName:  l.ProductName,
			Qty:          l.Qty,
			BuyUnitPrice: l.BuyUnitPrice,
			LineTotal:    l.PayableLineTotal,
			IsLegacyCalc: l.IsLegacyCalc,
		})
	}
	return out
}

func toSalesReportDTO(s reporting.SalesReport) dto.SalesReportDTO {
	out := dto.SalesReportDTO{
		Totals: dto.SalesTotalsDTO{
			OrdersCount: s.Totals.OrdersCount,
			TotalQty:    s.Totals.TotalQty,
			Revenue:     s.Totals.Revenue,
			Cost:        s.Totals.Cost,
			Profit:      s.Totals.Profit,
			MarginPct:   s.Totals.MarginPct,
		},
		ByManufacturer: make([]dto.ManufacturerSalesDTO, 0, len(s.ByManufacturer)),
		ByProduct:      make([]dto.ProductSalesDTO, 0, len(s.ByProduct)),
	}
	for _, m := range s.ByManufacturer {
		out.ByManufacturer = append(out.ByManufacturer, dto.ManufacturerSalesDTO{
			ManufacturerID:   m.ManufacturerID,
			ManufacturerName: m.ManufacturerName,
			OrdersCount:      m.OrdersCount,
			TotalQty:         m.TotalQty,
			Revenue:          m.Revenue,
			Cost:             m.Cost,
			Profit:           m.Profit,
			MarginPct:        m.MarginPct,
		})
	}
	for _, p := range s.ByProduct {
		out.ByProduct = append(out.ByProduct, dto.ProductSalesDTO{
			ProductID:        p.ProductID,
			ProductName:      p.ProductName,
			ManufacturerID:   p.ManufacturerID,
			ManufacturerName: p.ManufacturerName,
			TotalQty:         p.TotalQty,
			Revenue:          p.Revenue,
			Cost:             p.Cost,
			Profit:           p.Profit,
			MarginPct:        p.MarginPct,
		})
	}
	return out
}
