package entity

import "time"

// ReportRun es el registro de auditoría de cada generación de reporte:
// qué período se pidió, cuánto tardó y qué problemas de calidad de datos
// se detectaron. Nunca bloquea la generación del reporte.
type ReportRun struct {
	ID                   string
	PeriodFrom           time.Time
	PeriodTo             time.Time
	ManufacturerFilter   string // "" = todos
	CostBasis            string
	VatOnBuy             bool
	OrdersCount          int
	LinesCount           int
	LegacyCalcLines      int
	MissingManufacturers int
	MissingProducts      int
	DurationMs           int64
	CreatedAt            time.Time
}
