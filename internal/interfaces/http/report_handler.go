package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Pagos-api/internal/application/dto"
	"github.com/jhoicas/Pagos-api/internal/application/payables"
	"github.com/jhoicas/Pagos-api/internal/domain"
)

// ReportHandler maneja los endpoints JSON del reporte de pagos.
type ReportHandler struct {
	uc *payables.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *payables.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// GetPayables godoc
// @Summary      Reporte de pagos a fabricantes
// @Description  Resumen por fabricante, estados de cuenta, contadores de salud
//               y reporte interno de ventas para el período.
// @Tags         reports
// @Produce      json
// @Param        start_date       query  string  false  "Inicio del período (YYYY-MM-DD). Default: primer día del mes."
// @Param        end_date         query  string  false  "Fin del período (YYYY-MM-DD). Default: hoy."
// @Param        manufacturer_id  query  string  false  "Filtrar a un solo fabricante."
// @Param        cost_basis       query  string  false  "base | tiered (default de config)."
// @Param        vat_on_buy       query  string  false  "true | false (default de config)."
// @Param        sort_by          query  string  false  "name | total_to_pay | total_qty | orders_count."
// @Param        sort_dir         query  string  false  "asc | desc."
// @Success      200  {object}  dto.ReportDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/reports/payables [get]
func (h *ReportHandler) GetPayables(c *fiber.Ctx) error {
	var req dto.ReportRequest
	if err := c.QueryParser(&req); err != nil {
		return badRequest(c, "INVALID_PARAMS", "parámetros de consulta inválidos")
	}

	report, err := h.uc.GetPayablesReport(c.Context(), req)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(report)
}

// GetStatement godoc
// @Summary      Estado de cuenta de un fabricante
// @Tags         reports
// @Produce      json
// @Param        manufacturerId  path  string  true  "Id del fabricante (o 'unknown')."
// @Success      200  {object}  dto.StatementDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reports/payables/statements/{manufacturerId} [get]
func (h *ReportHandler) GetStatement(c *fiber.Ctx) error {
	var req dto.ReportRequest
	if err := c.QueryParser(&req); err != nil {
		return badRequest(c, "INVALID_PARAMS", "parámetros de consulta inválidos")
	}

	statement, err := h.uc.GetStatement(c.Context(), req, c.Params("manufacturerId"))
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(statement)
}

// GetSales godoc
// @Summary      Reporte interno de ventas (ingreso, costo, utilidad, margen)
// @Tags         reports
// @Produce      json
// @Success      200  {object}  dto.SalesReportDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/sales [get]
func (h *ReportHandler) GetSales(c *fiber.Ctx) error {
	var req dto.ReportRequest
	if err := c.QueryParser(&req); err != nil {
		return badRequest(c, "INVALID_PARAMS", "parámetros de consulta inválidos")
	}

	sales, err := h.uc.GetSalesReport(c.Context(), req)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(sales)
}

func badRequest(c *fiber.Ctx, code, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: code, Message: message})
}

// mapError traduce errores de dominio a códigos HTTP.
func mapError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidPeriod):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_PERIOD", Message: err.Error(),
		})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "BAD_REQUEST", Message: err.Error(),
		})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Code: "NOT_FOUND", Message: "fabricante sin movimientos en el período",
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "INTERNAL", Message: "no se pudo generar el reporte",
		})
	}
}
