package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ── Query parameters ──────────────────────────────────────────────────────────

// ReportRequest parámetros para GET /api/reports/payables.
type ReportRequest struct {
	StartDate      string `query:"start_date"`      // YYYY-MM-DD; por defecto primer día del mes actual
	EndDate        string `query:"end_date"`        // YYYY-MM-DD; por defecto hoy
	ManufacturerID string `query:"manufacturer_id"` // filtro opcional
	CostBasis      string `query:"cost_basis"`      // base|tiered; default de config
	VatOnBuy       string `query:"vat_on_buy"`      // true|false; default de config
	SortBy         string `query:"sort_by"`         // name|total_to_pay|total_qty|orders_count
	SortDir        string `query:"sort_dir"`        // asc|desc
}

// ── Resumen y estados de cuenta ───────────────────────────────────────────────

// SummaryRowDTO fila del resumen entre fabricantes.
type SummaryRowDTO struct {
	ManufacturerID   string          `json:"manufacturer_id"`
	ManufacturerName string          `json:"manufacturer_name"`
	OrdersCount      int             `json:"orders_count"`
	LinesCount       int             `json:"lines_count"`
	TotalQty         int64           `json:"total_qty"`
	TotalToPay       decimal.Decimal `json:"total_to_pay"`
}

// StatementProductDTO producto dentro del estado de cuenta de un fabricante.
type StatementProductDTO struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	TotalQty    int64           `json:"total_qty"`
	TotalToPay  decimal.Decimal `json:"total_to_pay"`
}

// StatementLineDTO línea contribuyente del estado de cuenta. Es la vista de
// pagos: deliberadamente no expone precio de venta ni utilidad.
type StatementLineDTO struct {
	OrderID      string          `json:"order_id"`
	OrderDate    time.Time       `json:"order_date"`
	CustomerID   string          `json:"customer_id"`
	ProductID    string          `json:"product_id"`
	ProductName  string          `json:"product_name"`
	Qty          int64           `json:"qty"`
	BuyUnitPrice decimal.Decimal `json:"buy_unit_price"`
	LineTotal    decimal.Decimal `json:"line_total"`
	IsLegacyCalc bool            `json:"is_legacy_calc,omitempty"`
}

// StatementDTO estado de cuenta de un fabricante.
type StatementDTO struct {
	ManufacturerID   string                `json:"manufacturer_id"`
	ManufacturerName string                `json:"manufacturer_name"`
	Products         []StatementProductDTO `json:"products"`
	Lines            []StatementLineDTO    `json:"lines"`
	TotalToPay       decimal.Decimal       `json:"total_to_pay"`
}

// HealthDTO contadores de calidad de datos para visibilidad del operador.
type HealthDTO struct {
	LegacyCalcLines          int `json:"legacy_calc_lines"`
	MissingManufacturerLines int `json:"missing_manufacturer_lines"`
	MissingProductDocLines   int `json:"missing_product_doc_lines"`
}

// ── Reporte interno de ventas ─────────────────────────────────────────────────

// SalesTotalsDTO totales globales de ingreso/costo/utilidad.
type SalesTotalsDTO struct {
	OrdersCount int             `json:"orders_count"`
	TotalQty    int64           `json:"total_qty"`
	Revenue     decimal.Decimal `json:"revenue"`
	Cost        decimal.Decimal `json:"cost"`
	Profit      decimal.Decimal `json:"profit"`
	MarginPct   decimal.Decimal `json:"margin_pct"`
}

// ManufacturerSalesDTO ventas por fabricante.
type ManufacturerSalesDTO struct {
	ManufacturerID   string          `json:"manufacturer_id"`
	ManufacturerName string          `json:"manufacturer_name"`
	OrdersCount      int             `json:"orders_count"`
	TotalQty         int64           `json:"total_qty"`
	Revenue          decimal.Decimal `json:"revenue"`
	Cost             decimal.Decimal `json:"cost"`
	Profit           decimal.Decimal `json:"profit"`
	MarginPct        decimal.Decimal `json:"margin_pct"`
}

// ProductSalesDTO ventas por producto.
type ProductSalesDTO struct {
	ProductID        string          `json:"product_id"`
	ProductName      string          `json:"product_name"`
	ManufacturerID   string          `json:"manufacturer_id"`
	ManufacturerName string          `json:"manufacturer_name"`
	TotalQty         int64           `json:"total_qty"`
	Revenue          decimal.Decimal `json:"revenue"`
	Cost             decimal.Decimal `json:"cost"`
	Profit           decimal.Decimal `json:"profit"`
	MarginPct        decimal.Decimal `json:"margin_pct"`
}

// SalesReportDTO reporte interno completo (solo uso interno).
type SalesReportDTO struct {
	Totals         SalesTotalsDTO         `json:"totals"`
	ByManufacturer []ManufacturerSalesDTO `json:"by_manufacturer"`
	ByProduct      []ProductSalesDTO      `json:"by_product"`
}

// ── Reporte completo ──────────────────────────────────────────────────────────

// ReportDTO respuesta de GET /api/reports/payables.
type ReportDTO struct {
	ID          string          `json:"id"`
	GeneratedAt time.Time       `json:"generated_at"`
	Period      PeriodDTO       `json:"period"`
	Summary     []SummaryRowDTO `json:"summary"`
	Statements  []StatementDTO  `json:"statements"`
	Health      HealthDTO       `json:"health"`
	Sales       SalesReportDTO  `json:"sales"`
}
