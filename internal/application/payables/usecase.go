package payables

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Pagos-api/internal/application/dto"
	"github.com/jhoicas/Pagos-api/internal/domain"
	"github.com/jhoicas/Pagos-api/internal/domain/entity"
	"github.com/jhoicas/Pagos-api/internal/domain/reporting"
	"github.com/jhoicas/Pagos-api/internal/domain/repository"
	"github.com/jhoicas/Pagos-api/pkg/config"
	"github.com/jhoicas/Pagos-api/pkg/logger"
)

// ReportUseCase orquesta el reporte de pagos a fabricantes: arma la
// configuración, trae el snapshot desde los repositorios y corre el motor.
// El fetch es el único I/O; si falla, no se devuelve reporte parcial.
type ReportUseCase struct {
	orderRepo        repository.OrderRepository
	productRepo      repository.ProductRepository
	manufacturerRepo repository.ManufacturerRepository
	runRepo          repository.ReportRunRepository
	defaults         config.ReportConfig
	log              *logger.Logger
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	manufacturerRepo repository.ManufacturerRepository,
	runRepo repository.ReportRunRepository,
	defaults config.ReportConfig,
	log *logger.Logger,
) *ReportUseCase {
	return &ReportUseCase{
		orderRepo:        orderRepo,
		productRepo:      productRepo,
		manufacturerRepo: manufacturerRepo,
		runRepo:          runRepo,
		defaults:         defaults,
		log:              log,
	}
}

// GetPayablesReport genera el reporte completo del período solicitado.
func (uc *ReportUseCase) GetPayablesReport(ctx context.Context, req dto.ReportRequest) (*dto.ReportDTO, error) {
	report, err := uc.BuildReport(ctx, req)
	if err != nil {
		return nil, err
	}
	return toReportDTO(report), nil
}

// GetStatement devuelve el estado de cuenta de un fabricante del período.
func (uc *ReportUseCase) GetStatement(ctx context.Context, req dto.ReportRequest, manufacturerID string) (*dto.StatementDTO, error) {
	req.ManufacturerID = manufacturerID
	report, err := uc.BuildReport(ctx, req)
	if err != nil {
		return nil, err
	}
	st := report.StatementFor(manufacturerID)
	if st == nil {
		return nil, domain.ErrNotFound
	}
	out := toStatementDTO(*st)
	return &out, nil
}

// GetSalesReport devuelve solo el reporte interno de ventas del período.
func (uc *ReportUseCase) GetSalesReport(ctx context.Context, req dto.ReportRequest) (*dto.SalesReportDTO, error) {
	// El reporte de ventas nunca se recorta por fabricante: es la vista global.
	req.ManufacturerID = ""
	report, err := uc.BuildReport(ctx, req)
	if err != nil {
		return nil, err
	}
	out := toSalesReportDTO(report.Sales)
	return &out, nil
}

// BuildReport corre el pipeline completo y devuelve el reporte de dominio.
// Lo usan también los casos de uso de exportación.
func (uc *ReportUseCase) BuildReport(ctx context.Context, req dto.ReportRequest) (*reporting.Report, error) {
	started := time.Now()

	cfg, err := uc.buildConfig(req)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// El fetch usa los límites llevados a frontera de día: una orden de las
	// 12:00 del último día del período también debe entrar.
	fetchFrom, fetchTo := cfg.PeriodBounds()
	orders, err := uc.orderRepo.ListDone(ctx, fetchFrom, fetchTo, cfg.ManufacturerID)
	if err != nil {
		return nil, fmt.Errorf("payables: listar órdenes: %w", err)
	}

	// Solo las líneas sin snapshot necesitan el maestro de productos.
	products, err := uc.productRepo.GetByIDs(ctx, legacyProductIDs(orders))
	if err != nil {
		return nil, fmt.Errorf("payables: maestro de productos: %w", err)
	}

	directory, err := uc.manufacturerRepo.Directory(ctx)
	if err != nil {
		return nil, fmt.Errorf("payables: directorio de fabricantes: %w", err)
	}

	report, err := reporting.BuildReport(ctx, orders, products, directory, cfg)
	if err != nil {
		return nil, err
	}
	report.ID = uuid.New().String()

	uc.recordRun(ctx, report, cfg, len(orders), time.Since(started))
	return report, nil
}

// buildConfig resuelve el período y los overrides del request contra los
// defaults de configuración.
func (uc *ReportUseCase) buildConfig(req dto.ReportRequest) (reporting.Config, error) {
	from, to, err := parsePeriod(req.StartDate, req.EndDate)
	if err != nil {
		return reporting.Config{}, err
	}

	cfg := reporting.Config{
		From:            from,
		To:              to,
		ManufacturerID:  req.ManufacturerID,
		CostBasis:       reporting.CostBasis(uc.defaults.DefaultCostBase),
		IncludeVatOnBuy: uc.defaults.VatOnBuy,
		DefaultVatRate:  uc.defaults.DefaultVatRate,
		SortBy:          reporting.SortByName,
		SortDir:         reporting.SortAsc,
	}

	switch req.CostBasis {
	case "":
	case string(reporting.CostBasisBaseOnly), string(reporting.CostBasisTiered):
		cfg.CostBasis = reporting.CostBasis(req.CostBasis)
	default:
		return reporting.Config{}, fmt.Errorf("%w: cost_basis %q (esperado base|tiered)", domain.ErrInvalidInput, req.CostBasis)
	}

	switch req.VatOnBuy {
	case "":
	case "true", "1":
		cfg.IncludeVatOnBuy = true
	case "false", "0":
		cfg.IncludeVatOnBuy = false
	default:
		return reporting.Config{}, fmt.Errorf("%w: vat_on_buy %q", domain.ErrInvalidInput, req.VatOnBuy)
	}

	switch req.SortBy {
	case "":
	case string(reporting.SortByName), string(reporting.SortByTotalToPay),
		string(reporting.SortByTotalQty), string(reporting.SortByOrdersCount):
		cfg.SortBy = reporting.SortKey(req.SortBy)
	default:
		return reporting.Config{}, fmt.Errorf("%w: sort_by %q", domain.ErrInvalidInput, req.SortBy)
	}

	switch req.SortDir {
	case "":
	case string(reporting.SortAsc), string(reporting.SortDesc):
		cfg.SortDir = reporting.SortDir(req.SortDir)
	default:
		return reporting.Config{}, fmt.Errorf("%w: sort_dir %q", domain.ErrInvalidInput, req.SortDir)
	}

	return cfg, nil
}

// recordRun deja la traza de auditoría de la corrida. Un fallo aquí no puede
// tumbar el reporte: se loguea y se sigue.
func (uc *ReportUseCase) recordRun(ctx context.Context, report *reporting.Report, cfg reporting.Config, ordersFetched int, elapsed time.Duration) {
	var lines int
	for _, row := range report.Summary {
		lines += row.LinesCount
	}

	run := &entity.ReportRun{
		ID:                   report.ID,
		PeriodFrom:           report.PeriodFrom,
		PeriodTo:             report.PeriodTo,
		ManufacturerFilter:   cfg.ManufacturerID,
		CostBasis:            string(cfg.CostBasis),
		VatOnBuy:             cfg.IncludeVatOnBuy,
		OrdersCount:          report.Sales.Totals.OrdersCount,
		LinesCount:           lines,
		LegacyCalcLines:      report.Health.LegacyCalcLines,
		MissingManufacturers: report.Health.MissingManufacturerLines,
		MissingProducts:      report.Health.MissingProductDocLines,
		DurationMs:           elapsed.Milliseconds(),
		CreatedAt:            report.GeneratedAt,
	}
	if err := uc.runRepo.Create(ctx, run); err != nil {
		uc.log.Warn().Err(err).Str("report_id", report.ID).Msg("no se pudo registrar la corrida del reporte")
	}

	evt := uc.log.Info()
	if report.Health.LegacyCalcLines > 0 || report.Health.MissingManufacturerLines > 0 || report.Health.MissingProductDocLines > 0 {
		evt = uc.log.Warn()
	}
	evt.
		Str("report_id", report.ID).
		Int("orders_fetched", ordersFetched).
		Int("orders_in_report", report.Sales.Totals.OrdersCount).
		Int("lines", lines).
		Int("legacy_calc_lines", report.Health.LegacyCalcLines).
		Int("missing_manufacturer_lines", report.Health.MissingManufacturerLines).
		Int("missing_product_doc_lines", report.Health.MissingProductDocLines).
		Dur("elapsed", elapsed).
		Msg("reporte de pagos generado")
}

// legacyProductIDs junta los productIds distintos de las líneas sin snapshot
// completo: son las únicas que necesitan consulta al maestro.
func legacyProductIDs(orders []entity.Order) []string {
	seen := make(map[string]struct{})
	var ids []string
	for _, o := range orders {
		for _, l := range o.Lines {
			if l.Snapshot.Complete() {
				continue
			}
			if _, ok := seen[l.ProductID]; ok {
				continue
			}
			seen[l.ProductID] = struct{}{}
			ids = append(ids, l.ProductID)
		}
	}
	return ids
}

// parsePeriod convierte los strings de fecha en time.Time; aplica valores por
// defecto si están vacíos (primer día del mes actual → hoy). La validación
// from ≤ to la hace el motor, no este helper.
func parsePeriod(startStr, endStr string) (start, end time.Time, err error) {
	now := time.Now()

	if endStr == "" {
		end = now
	} else {
		end, err = time.ParseInLocation("2006-01-02", endStr, now.Location())
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: end_date: %v", domain.ErrInvalidInput, err)
		}
	}

	if startStr == "" {
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	} else {
		start, err = time.ParseInLocation("2006-01-02", startStr, now.Location())
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: start_date: %v", domain.ErrInvalidInput, err)
		}
	}

	return start, end, nil
}
