package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Pagos-api/internal/application/payables"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ReportUC *payables.ReportUseCase
	ExportUC *payables.ExportUseCase
}

// Router registra las rutas de la API. Autenticación y roles se resuelven en
// el gateway, fuera de este servicio.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	reports := api.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	exportHandler := NewExportHandler(deps.ExportUC)

	// Reporte de pagos a fabricantes
	reports.Get("/payables", reportHandler.GetPayables)
	reports.Get("/payables/export", exportHandler.ExportReport)
	reports.Get("/payables/statements/:manufacturerId", reportHandler.GetStatement)
	reports.Get("/payables/statements/:manufacturerId/export", exportHandler.ExportStatement)
	reports.Get("/payables/statements/:manufacturerId/pdf", exportHandler.StatementPDF)

	// Reporte interno de ventas
	reports.Get("/sales", reportHandler.GetSales)
}
