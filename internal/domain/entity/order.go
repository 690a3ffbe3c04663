package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ciclo de vida de una orden. La máquina de estados vive en el
// storefront; el motor de reportes solo consume órdenes en estado terminal.
const (
	OrderStatusDone      = "done"
	OrderStatusCancelled = "cancelled"
)

// Order representa una orden completada del storefront.
// VatRate es la tasa de IVA propia de la orden; si es nil se usa la tasa por
// defecto configurada en el reporte.
type Order struct {
	ID         string
	CustomerID string
	CreatedAt  time.Time
	Status     string
	VatRate    *decimal.Decimal
	Lines      []OrderLine
}

// OrderLine es una línea de la orden. ManufacturerID/ManufacturerName y
// Snapshot son opcionales: las líneas antiguas (anteriores al snapshot de
// costos) no los traen y su costo se reconstruye desde el maestro de productos.
type OrderLine struct {
	ProductID        string
	Name             string
	Qty              int64
	UnitPrice        decimal.Decimal // precio de venta unitario
	ManufacturerID   string          // "" si la línea no lo trae
	ManufacturerName string          // "" si la línea no lo trae
	Snapshot         *CostSnapshot
}

// SellTotal devuelve el total de venta de la línea (precio unitario × cantidad).
func (l OrderLine) SellTotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(l.Qty))
}

// CostSnapshot es la foto inmutable del costo de compra tomada al confirmar la
// orden. Cuando está completa es autoritativa: nunca se recalcula aunque el
// maestro de productos haya cambiado.
type CostSnapshot struct {
	BuyBase        *decimal.Decimal
	TierMultiplier *decimal.Decimal
	BuyUnitPrice   *decimal.Decimal
	BuyLineTotal   *decimal.Decimal
}

// Complete indica si el snapshot trae los dos campos que lo hacen usable:
// precio unitario de compra y total de línea.
func (s *CostSnapshot) Complete() bool {
	return s != nil && s.BuyUnitPrice != nil && s.BuyLineTotal != nil
}
