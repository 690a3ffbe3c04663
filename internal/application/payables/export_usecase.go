package payables

import (
	"context"
	"fmt"

	"github.com/jhoicas/Pagos-api/internal/application/dto"
	"github.com/jhoicas/Pagos-api/internal/domain"
)

// ExportUseCase genera los archivos descargables del reporte: el libro xlsx
// completo, el estado de cuenta xlsx de un fabricante y su PDF imprimible.
type ExportUseCase struct {
	reportUC *ReportUseCase
	exporter ReportExporter
	pdfGen   StatementPDFGenerator
}

// NewExportUseCase construye el caso de uso.
func NewExportUseCase(reportUC *ReportUseCase, exporter ReportExporter, pdfGen StatementPDFGenerator) *ExportUseCase {
	return &ExportUseCase{reportUC: reportUC, exporter: exporter, pdfGen: pdfGen}
}

// ExportReport genera el libro completo (resumen + detalle + ventas).
// Devuelve los bytes del archivo y el nombre sugerido.
func (uc *ExportUseCase) ExportReport(ctx context.Context, req dto.ReportRequest) ([]byte, string, error) {
	report, err := uc.reportUC.BuildReport(ctx, req)
	if err != nil {
		return nil, "", err
	}
	data, err := uc.exporter.ExportReport(ctx, report)
	if err != nil {
		return nil, "", fmt.Errorf("payables: exportar reporte: %w", err)
	}
	filename := fmt.Sprintf("pagos_fabricantes_%s_%s.xlsx",
		report.PeriodFrom.Format("20060102"), report.PeriodTo.Format("20060102"))
	return data, filename, nil
}

// ExportStatement genera el estado de cuenta xlsx de un solo fabricante.
func (uc *ExportUseCase) ExportStatement(ctx context.Context, req dto.ReportRequest, manufacturerID string) ([]byte, string, error) {
	req.ManufacturerID = manufacturerID
	report, err := uc.reportUC.BuildReport(ctx, req)
	if err != nil {
		return nil, "", err
	}
	st := report.StatementFor(manufacturerID)
	if st == nil {
		return nil, "", domain.ErrNotFound
	}
	data, err := uc.exporter.ExportStatement(ctx, report, st)
	if err != nil {
		return nil, "", fmt.Errorf("payables: exportar estado de cuenta: %w", err)
	}
	filename := fmt.Sprintf("estado_cuenta_%s_%s_%s.xlsx", manufacturerID,
		report.PeriodFrom.Format("20060102"), report.PeriodTo.Format("20060102"))
	return data, filename, nil
}

// DownloadStatementPDF genera el PDF del estado de cuenta del fabricante.
func (uc *ExportUseCase) DownloadStatementPDF(ctx context.Context, req dto.ReportRequest, manufacturerID string) ([]byte, string, error) {
	req.ManufacturerID = manufacturerID
	report, err := uc.reportUC.BuildReport(ctx, req)
	if err != nil {
		return nil, "", err
	}
	st := report.StatementFor(manufacturerID)
	if st == nil {
		return nil, "", domain.ErrNotFound
	}
	data, err := uc.pdfGen.GenerateStatementPDF(ctx, report, st)
	if err != nil {
		return nil, "", fmt.Errorf("payables: PDF de estado de cuenta: %w", err)
	}
	filename := fmt.Sprintf("estado_cuenta_%s_%s_%s.pdf", manufacturerID,
		report.PeriodFrom.Format("20060102"), report.PeriodTo.Format("20060102"))
	return data, filename, nil
}
