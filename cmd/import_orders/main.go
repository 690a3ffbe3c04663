// import_orders importa pedidos históricos desde un CSV exportado del sistema
// de ventas anterior (codificado en Windows-1252) hacia las tablas orders /
// order_lines. Las líneas importadas no traen snapshot de costos: el motor de
// reportes las recalcula con la lista de precios por cantidad vigente.
//
// Formato esperado (una fila por línea de pedido, con encabezado):
//
//	order_id,customer_id,created_at,status,vat_rate,product_id,product_name,qty,unit_price,manufacturer_id,manufacturer_name
//
// Uso: go run ./cmd/import_orders pedidos_legacy.csv
package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/Pagos-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Pagos-api/pkg/config"
	"github.com/jhoicas/Pagos-api/pkg/logger"
)

type legacyRow struct {
	orderID          string
	customerID       string
	createdAt        time.Time
	status           string
	vatRate          *decimal.Decimal
	productID        string
	productName      string
	qty              int64
	unitPrice        decimal.Decimal
	manufacturerID   string
	manufacturerName string
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Uso: import_orders <pedidos_legacy.csv>")
		os.Exit(1)
	}
	csvPath := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Level: cfg.App.LogLevel, Env: cfg.App.Env, Service: "import_orders"})

	f, err := os.Open(csvPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", csvPath).Msg("No se pudo abrir el CSV")
	}
	defer f.Close()

	rows, skipped, err := parseLegacyCSV(f)
	if err != nil {
		log.Fatal().Err(err).Msg("No se pudo leer el CSV")
	}
	if len(rows) == 0 {
		log.Fatal().Msg("El CSV no contiene líneas válidas")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("No se pudo conectar a PostgreSQL")
	}
	defer pool.Close()

	orders, lines, err := importRows(ctx, pool, rows)
	if err != nil {
		log.Fatal().Err(err).Msg("Importación fallida")
	}

	log.Info().
		Int("pedidos", orders).
		Int("lineas", lines).
		Int("filas_descartadas", skipped).
		Msg("Importación de pedidos históricos completada")
}

// parseLegacyCSV lee el CSV Windows-1252 y devuelve las filas válidas junto
// con el conteo de filas descartadas por datos incompletos.
func parseLegacyCSV(r io.Reader) ([]legacyRow, int, error) {
	reader := csv.NewReader(transform.NewReader(r, charmap.Windows1252.NewDecoder()))
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("leer encabezado: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"order_id", "created_at", "product_id", "qty", "unit_price"} {
		if _, ok := col[required]; !ok {
			return nil, 0, fmt.Errorf("columna requerida ausente: %s", required)
		}
	}

	field := func(record []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var (
		rows    []legacyRow
		skipped int
		lineNo  = 1
	)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		lineNo++
		if err != nil {
			return nil, 0, fmt.Errorf("fila %d: %w", lineNo, err)
		}

		row, ok := parseRow(record, field)
		if !ok {
			skipped++
			continue
		}
		rows = append(rows, row)
	}
	return rows, skipped, nil
}

func parseRow(record []string, field func([]string, string) string) (legacyRow, bool) {
	var row legacyRow

	row.orderID = field(record, "order_id")
	row.productID = field(record, "product_id")
	if row.orderID == "" || row.productID == "" {
		return row, false
	}

	createdAt, err := parseLegacyDate(field(record, "created_at"))
	if err != nil {
		return row, false
	}
	row.createdAt = createdAt

	qty, err := strconv.ParseInt(field(record, "qty"), 10, 64)
	if err != nil || qty <= 0 {
		return row, false
	}
	row.qty = qty

	unitPrice, err := decimal.NewFromString(field(record, "unit_price"))
	if err != nil {
		return row, false
	}
	row.unitPrice = unitPrice

	if s := field(record, "vat_rate"); s != "" {
		rate, err := decimal.NewFromString(s)
		if err != nil {
			return row, false
		}
		row.vatRate = &rate
	}

	row.customerID = field(record, "customer_id")
	row.status = strings.ToLower(field(record, "status"))
	if row.status == "" {
		row.status = "done"
	}
	row.productName = field(record, "product_name")
	row.manufacturerID = field(record, "manufacturer_id")
	row.manufacturerName = field(record, "manufacturer_name")
	return row, true
}

// parseLegacyDate acepta los dos formatos que produjo el sistema anterior.
func parseLegacyDate(s string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02 15:04:05", "2006-01-02", "02/01/2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("fecha no reconocida: %q", s)
}

// importRows inserta pedidos y líneas en una sola transacción. El pedido se
// reinserta completo: si ya existía se eliminan sus líneas previas para que la
// importación sea re-ejecutable.
func importRows(ctx context.Context, pool *pgxpool.Pool, rows []legacyRow) (int, int, error) {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("abrir transacción: %w", err)
	}
	defer tx.Rollback(ctx)

	// Agrupar líneas por pedido preservando el orden del archivo.
	orderIDs := make([]string, 0)
	byOrder := make(map[string][]legacyRow)
	for _, row := range rows {
		if _, ok := byOrder[row.orderID]; !ok {
			orderIDs = append(orderIDs, row.orderID)
		}
		byOrder[row.orderID] = append(byOrder[row.orderID], row)
	}

	lines := 0
	for _, orderID := range orderIDs {
		group := byOrder[orderID]
		head := group[0]

		var customerID *string
		if head.customerID != "" {
			customerID = &head.customerID
		}
		_, err := tx.Exec(ctx, `
			INSERT INTO orders (id, customer_id, created_at, status, vat_rate)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (id) DO UPDATE SET
			    customer_id = EXCLUDED.customer_id,
			    created_at  = EXCLUDED.created_at,
			    status      = EXCLUDED.status,
			    vat_rate    = EXCLUDED.vat_rate`,
			orderID, customerID, head.createdAt, head.status, head.vatRate)
		if err != nil {
			return 0, 0, fmt.Errorf("insertar pedido %s: %w", orderID, err)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM order_lines WHERE order_id = $1`, orderID); err != nil {
			return 0, 0, fmt.Errorf("limpiar líneas del pedido %s: %w", orderID, err)
		}

		for _, row := range group {
			var manID, manName *string
			if row.manufacturerID != "" {
				manID = &row.manufacturerID
			}
			if row.manufacturerName != "" {
				manName = &row.manufacturerName
			}
			// Sin columnas de snapshot: el costo se resuelve al generar el reporte.
			_, err := tx.Exec(ctx, `
				INSERT INTO order_lines (id, order_id, product_id, name, qty, unit_price, manufacturer_id, manufacturer_name)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
				uuid.New().String(), orderID, row.productID, row.productName,
				row.qty, row.unitPrice, manID, manName)
			if err != nil {
				return 0, 0, fmt.Errorf("insertar línea del pedido %s: %w", orderID, err)
			}
			lines++
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, 0, fmt.Errorf("confirmar transacción: %w", err)
	}
	return len(orderIDs), lines, nil
}
