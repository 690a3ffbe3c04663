package reporting

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Pagos-api/internal/domain"
)

// CostBasis define con qué costo se calcula el monto a pagar al fabricante.
type CostBasis string

const (
	// CostBasisBaseOnly paga al costo de lista, ignorando el multiplicador de
	// banda (el descuento por volumen queda como margen interno).
	CostBasisBaseOnly CostBasis = "base"
	// CostBasisTiered paga al costo efectivo con banda aplicada.
	CostBasisTiered CostBasis = "tiered"
)

// Claves de ordenamiento del resumen por fabricante.
type SortKey string

const (
	SortByName        SortKey = "name"
	SortByTotalToPay  SortKey = "total_to_pay"
	SortByTotalQty    SortKey = "total_qty"
	SortByOrdersCount SortKey = "orders_count"
)

// SortDir dirección de ordenamiento.
type SortDir string

const (
	SortAsc  SortDir = "asc"
	SortDesc SortDir = "desc"
)

// Identidad centinela para líneas sin fabricante resoluble. Es una colisión
// deliberada y documentada: todas esas líneas se agrupan en un solo bucket.
const (
	UnknownManufacturerID   = "unknown"
	UnknownManufacturerName = "Fabricante desconocido"
)

// Config parámetros de una corrida del reporte. El motor no tiene estado
// implícito: todo lo que afecta el resultado entra por aquí.
type Config struct {
	From           time.Time // inclusive, se normaliza al inicio del día
	To             time.Time // inclusive, se normaliza al final del día
	ManufacturerID string    // filtro opcional; "" = todos

	CostBasis       CostBasis
	IncludeVatOnBuy bool
	DefaultVatRate  decimal.Decimal // se usa cuando la orden no trae tasa propia

	SortBy  SortKey
	SortDir SortDir
}

// Validate verifica el período. Se ejecuta antes de cualquier fetch o cálculo.
func (c Config) Validate() error {
	if c.From.After(c.To) {
		return domain.ErrInvalidPeriod
	}
	return nil
}

// withDefaults completa valores no especificados.
func (c Config) withDefaults() Config {
	if c.CostBasis == "" {
		c.CostBasis = CostBasisTiered
	}
	if c.SortBy == "" {
		c.SortBy = SortByName
	}
	if c.SortDir == "" {
		c.SortDir = SortAsc
	}
	return c
}

// PeriodBounds devuelve los límites del período llevados a frontera de día:
// [inicio del día From, fin del día To]. El fetch de órdenes debe usar estos
// mismos límites para que el repositorio y el motor filtren igual.
func (c Config) PeriodBounds() (time.Time, time.Time) {
	from := time.Date(c.From.Year(), c.From.Month(), c.From.Day(), 0, 0, 0, 0, c.From.Location())
	to := time.Date(c.To.Year(), c.To.Month(), c.To.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), c.To.Location())
	return from, to
}
