package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Pagos-api/internal/application/dto"
	"github.com/jhoicas/Pagos-api/internal/application/payables"
	"github.com/jhoicas/Pagos-api/internal/domain/entity"
	apphttp "github.com/jhoicas/Pagos-api/internal/interfaces/http"
	"github.com/jhoicas/Pagos-api/pkg/config"
	"github.com/jhoicas/Pagos-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests de contrato HTTP: rutas, códigos de estado y forma del JSON. La
// aritmética del motor se prueba en internal/domain/reporting.
// ──────────────────────────────────────────────────────────────────────────────

type stubOrderRepo struct{ orders []entity.Order }

func (s *stubOrderRepo) ListDone(context.Context, time.Time, time.Time, string) ([]entity.Order, error) {
	return s.orders, nil
}

type stubProductRepo struct{}

func (stubProductRepo) GetByIDs(context.Context, []string) (map[string]*entity.Product, error) {
	return map[string]*entity.Product{}, nil
}

type stubManufacturerRepo struct{}

func (stubManufacturerRepo) Directory(context.Context) (map[string]string, error) {
	return map[string]string{}, nil
}

type stubRunRepo struct{}

func (stubRunRepo) Create(context.Context, *entity.ReportRun) error { return nil }

func buildTestApp() *fiber.App {
	precio := decimal.NewFromInt(8)
	total := decimal.NewFromInt(80)
	orders := []entity.Order{{
		ID: "ord-1", CustomerID: "cli-1",
		CreatedAt: time.Date(2026, 3, 5, 12, 0, 0, 0, time.UTC),
		Status:    entity.OrderStatusDone,
		Lines: []entity.OrderLine{{
			ProductID: "prod-a", Name: "Tornillo M8", Qty: 10,
			UnitPrice:      decimal.NewFromInt(20),
			ManufacturerID: "fab-1", ManufacturerName: "Aceros del Norte",
			Snapshot: &entity.CostSnapshot{BuyUnitPrice: &precio, BuyLineTotal: &total},
		}},
	}}

	uc := payables.NewReportUseCase(
		&stubOrderRepo{orders: orders},
		stubProductRepo{},
		stubManufacturerRepo{},
		stubRunRepo{},
		config.ReportConfig{
			DefaultVatRate:  decimal.RequireFromString("0.19"),
			DefaultCostBase: "tiered",
		},
		logger.Nop(),
	)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{ReportUC: uc})
	return app
}

func get(t *testing.T, app *fiber.App, url string) (int, []byte) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", url, nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, body
}

func TestGetPayables_OK(t *testing.T) {
	app := buildTestApp()

	status, body := get(t, app, "/api/reports/payables?start_date=2026-03-01&end_date=2026-03-31")

	require.Equal(t, fiber.StatusOK, status)
	var rep dto.ReportDTO
	require.NoError(t, json.Unmarshal(body, &rep))
	assert.NotEmpty(t, rep.ID)
	require.Len(t, rep.Summary, 1)
	assert.Equal(t, "fab-1", rep.Summary[0].ManufacturerID)
	assert.True(t, decimal.NewFromInt(80).Equal(rep.Summary[0].TotalToPay))
}

func TestGetPayables_PeriodoInvalido(t *testing.T) {
	app := buildTestApp()

	status, body := get(t, app, "/api/reports/payables?start_date=2026-03-31&end_date=2026-03-01")

	require.Equal(t, fiber.StatusBadRequest, status)
	var e dto.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &e))
	assert.Equal(t, "INVALID_PERIOD", e.Code)
}

func TestGetPayables_ParametroInvalido(t *testing.T) {
	app := buildTestApp()

	status, body := get(t, app, "/api/reports/payables?start_date=2026-03-01&end_date=2026-03-31&cost_basis=mayorista")

	require.Equal(t, fiber.StatusBadRequest, status)
	var e dto.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &e))
	assert.Equal(t, "BAD_REQUEST", e.Code)
}

func TestGetStatement_OK(t *testing.T) {
	app := buildTestApp()

	status, body := get(t, app, "/api/reports/payables/statements/fab-1?start_date=2026-03-01&end_date=2026-03-31")

	require.Equal(t, fiber.StatusOK, status)
	var st dto.StatementDTO
	require.NoError(t, json.Unmarshal(body, &st))
	assert.Equal(t, "fab-1", st.ManufacturerID)
	require.Len(t, st.Lines, 1)
}

func TestGetStatement_NoEncontrado(t *testing.T) {
	app := buildTestApp()

	status, body := get(t, app, "/api/reports/payables/statements/fab-fantasma?start_date=2026-03-01&end_date=2026-03-31")

	require.Equal(t, fiber.StatusNotFound, status)
	var e dto.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &e))
	assert.Equal(t, "NOT_FOUND", e.Code)
}

func TestGetSales_OK(t *testing.T) {
	app := buildTestApp()

	status, body := get(t, app, "/api/reports/sales?start_date=2026-03-01&end_date=2026-03-31")

	require.Equal(t, fiber.StatusOK, status)
	var ventas dto.SalesReportDTO
	require.NoError(t, json.Unmarshal(body, &ventas))
	assert.True(t, decimal.NewFromInt(200).Equal(ventas.Totals.Revenue))
	assert.True(t, decimal.NewFromInt(80).Equal(ventas.Totals.Cost))
}
