package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Pagos-api/internal/application/dto"
	"github.com/jhoicas/Pagos-api/internal/application/payables"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler maneja las descargas del reporte (xlsx y PDF).
type ExportHandler struct {
	uc *payables.ExportUseCase
}

// NewExportHandler construye el handler.
func NewExportHandler(uc *payables.ExportUseCase) *ExportHandler {
	return &ExportHandler{uc: uc}
}

// ExportReport godoc
// @Summary      Descarga el reporte completo como xlsx
// @Tags         reports
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}  binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/payables/export [get]
func (h *ExportHandler) ExportReport(c *fiber.Ctx) error {
	var req dto.ReportRequest
	if err := c.QueryParser(&req); err != nil {
		return badRequest(c, "INVALID_PARAMS", "parámetros de consulta inválidos")
	}

	data, filename, err := h.uc.ExportReport(c.Context(), req)
	if err != nil {
		return mapError(c, err)
	}
	return sendAttachment(c, data, filename, xlsxContentType)
}

// ExportStatement godoc
// @Summary      Descarga el estado de cuenta de un fabricante como xlsx
// @Tags         reports
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reports/payables/statements/{manufacturerId}/export [get]
func (h *ExportHandler) ExportStatement(c *fiber.Ctx) error {
	var req dto.ReportRequest
	if err := c.QueryParser(&req); err != nil {
		return badRequest(c, "INVALID_PARAMS", "parámetros de consulta inválidos")
	}

	data, filename, err := h.uc.ExportStatement(c.Context(), req, c.Params("manufacturerId"))
	if err != nil {
		return mapError(c, err)
	}
	return sendAttachment(c, data, filename, xlsxContentType)
}

// StatementPDF godoc
// @Summary      Descarga el estado de cuenta de un fabricante como PDF
// @Tags         reports
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reports/payables/statements/{manufacturerId}/pdf [get]
func (h *ExportHandler) StatementPDF(c *fiber.Ctx) error {
	var req dto.ReportRequest
	if err := c.QueryParser(&req); err != nil {
		return badRequest(c, "INVALID_PARAMS", "parámetros de consulta inválidos")
	}

	data, filename, err := h.uc.DownloadStatementPDF(c.Context(), req, c.Params("manufacturerId"))
	if err != nil {
		return mapError(c, err)
	}
	return sendAttachment(c, data, filename, "application/pdf")
}

func sendAttachment(c *fiber.Ctx, data []byte, filename, contentType string) error {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}
