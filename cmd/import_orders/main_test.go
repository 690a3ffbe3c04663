package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

const encabezado = "order_id,customer_id,created_at,status,vat_rate,product_id,product_name,qty,unit_price,manufacturer_id,manufacturer_name\n"

// enWindows1252 codifica el CSV como lo exportaba el sistema anterior.
func enWindows1252(t *testing.T, s string) []byte {
	t.Helper()
	out, err := charmap.Windows1252.NewEncoder().Bytes([]byte(s))
	require.NoError(t, err)
	return out
}

func TestParseLegacyCSV_DecodificaWindows1252(t *testing.T) {
	csv := encabezado +
		"ord-1,cli-1,2024-05-10,done,0.19,prod-1,Tornillería métrica,10,12.50,fab-1,Aceros Ibéricos\n"

	rows, skipped, err := parseLegacyCSV(bytes.NewReader(enWindows1252(t, csv)))

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Zero(t, skipped)
	assert.Equal(t, "Tornillería métrica", rows[0].productName, "los acentos deben sobrevivir la decodificación")
	assert.Equal(t, "Aceros Ibéricos", rows[0].manufacturerName)
	assert.Equal(t, int64(10), rows[0].qty)
	require.NotNil(t, rows[0].vatRate)
	assert.Equal(t, "0.19", rows[0].vatRate.String())
}

func TestParseLegacyCSV_DescartaFilasIncompletas(t *testing.T) {
	csv := encabezado +
		"ord-1,cli-1,2024-05-10,done,,prod-1,A,10,12.50,,\n" + // válida
		",cli-2,2024-05-10,done,,prod-2,B,5,3,,\n" + // sin order_id
		"ord-3,cli-3,2024-05-10,done,,prod-3,C,0,3,,\n" + // qty cero
		"ord-4,cli-4,fecha-rota,done,,prod-4,D,2,3,,\n" // fecha ilegible

	rows, skipped, err := parseLegacyCSV(strings.NewReader(csv))

	require.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, 3, skipped)
}

func TestParseLegacyCSV_FormatosDeFecha(t *testing.T) {
	csv := encabezado +
		"ord-1,,2024-05-10 14:30:00,done,,prod-1,A,1,1,,\n" +
		"ord-2,,2024-05-10,done,,prod-1,A,1,1,,\n" +
		"ord-3,,10/05/2024,done,,prod-1,A,1,1,,\n"

	rows, _, err := parseLegacyCSV(strings.NewReader(csv))

	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, rows[1].createdAt, rows[2].createdAt,
		"2024-05-10 y 10/05/2024 son la misma fecha")
}

func TestParseLegacyCSV_EstadoPorDefecto(t *testing.T) {
	csv := encabezado +
		"ord-1,,2024-05-10,,,prod-1,A,1,1,,\n"

	rows, _, err := parseLegacyCSV(strings.NewReader(csv))

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "done", rows[0].status, "sin estado se asume pedido completado")
}

func TestParseLegacyCSV_ColumnaRequeridaAusente(t *testing.T) {
	csv := "order_id,qty\nord-1,5\n"

	_, _, err := parseLegacyCSV(strings.NewReader(csv))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "columna requerida")
}
