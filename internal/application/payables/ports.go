package payables

import (
	"context"

	"github.com/jhoicas/Pagos-api/internal/domain/reporting"
)

// ReportExporter serializa el reporte completo a un libro de cálculo (xlsx).
// El formato de archivo es responsabilidad del exportador, no del motor.
type ReportExporter interface {
	ExportReport(ctx context.Context, report *reporting.Report) ([]byte, error)
	ExportStatement(ctx context.Context, report *reporting.Report, statement *reporting.Statement) ([]byte, error)
}

// StatementPDFGenerator genera el estado de cuenta imprimible que se le envía
// al fabricante.
type StatementPDFGenerator interface {
	GenerateStatementPDF(ctx context.Context, report *reporting.Report, statement *reporting.Statement) ([]byte, error)
}
