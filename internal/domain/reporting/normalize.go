package reporting

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Pagos-api/internal/domain/entity"
)

// NormalizedLine es la línea ya resuelta: identidad de fabricante, costos y
// flags de calidad de datos. Es un valor inmutable; ningún componente aguas
// abajo vuelve a leer campos opcionales de la orden original.
type NormalizedLine struct {
	OrderID    string
	OrderDate  time.Time
	CustomerID string

	ProductID   string
	ProductName string
	Qty         int64

	ManufacturerID   string
	ManufacturerName string

	SellUnitPrice decimal.Decimal
	SellLineTotal decimal.Decimal

	BuyBase        decimal.Decimal
	TierMultiplier decimal.Decimal
	BuyUnitPrice   decimal.Decimal
	BuyLineTotal   decimal.Decimal

	VatRate          decimal.Decimal // tasa resuelta (orden o default de config)
	PayableLineTotal decimal.Decimal // se completa al aplicar la política de pago

	IsLegacyCalc          bool // costo reconstruido desde el maestro actual
	MissingManufacturerID bool // ningún origen aportó id de fabricante
	MissingProductDoc     bool // sin snapshot y sin maestro: costos en cero
}

// NormalizeLine resuelve una línea de orden contra el maestro de productos y
// el directorio de fabricantes (id → nombre, solo presentación).
//
// Identidad del fabricante, en orden: la propia línea, el maestro del
// producto, el centinela "unknown".
//
// Costos: si la línea trae snapshot completo se usa tal cual — es
// autoritativo y nunca se recalcula aunque el maestro haya cambiado. Si no
// (línea legacy), se reconstruye desde el maestro con la banda de cantidad
// vigente. Sin snapshot ni maestro, los costos quedan en cero.
func NormalizeLine(order entity.Order, line entity.OrderLine, product *entity.Product, directory map[string]string, defaultVatRate decimal.Decimal) NormalizedLine {
	nl := NormalizedLine{
		OrderID:       order.ID,
		OrderDate:     order.CreatedAt,
		CustomerID:    order.CustomerID,
		ProductID:     line.ProductID,
		ProductName:   line.Name,
		Qty:           line.Qty,
		SellUnitPrice: line.UnitPrice,
		SellLineTotal: line.SellTotal(),
		VatRate:       defaultVatRate,
	}
	if order.VatRate != nil {
		nl.VatRate = *order.VatRate
	}
	if nl.ProductName == "" && product != nil {
		nl.ProductName = product.Name
	}

	nl.ManufacturerID, nl.ManufacturerName, nl.MissingManufacturerID =
		resolveManufacturer(line, product, directory)

	resolveCosts(&nl, line, product)
	return nl
}

func resolveManufacturer(line entity.OrderLine, product *entity.Product, directory map[string]string) (id, name string, missing bool) {
	switch {
	case line.ManufacturerID != "":
		id, name = line.ManufacturerID, line.ManufacturerName
	case product != nil && product.ManufacturerID != "":
		id, name = product.ManufacturerID, product.ManufacturerName
	default:
		return UnknownManufacturerID, UnknownManufacturerName, true
	}

	if name == "" {
		name = directory[id]
	}
	if name == "" {
		// Sin nombre en ningún origen: el id al menos identifica la fila.
		name = id
	}
	return id, name, false
}

func resolveCosts(nl *NormalizedLine, line entity.OrderLine, product *entity.Product) {
	qty := decimal.NewFromInt(nl.Qty)

	if line.Snapshot.Complete() {
		snap := line.Snapshot
		nl.BuyUnitPrice = *snap.BuyUnitPrice
		nl.BuyLineTotal = *snap.BuyLineTotal
		if snap.BuyBase != nil {
			nl.BuyBase = *snap.BuyBase
		} else {
			// Snapshot viejo sin costo base: el unitario efectivo es lo mejor disponible.
			nl.BuyBase = *snap.BuyUnitPrice
		}
		if snap.TierMultiplier != nil {
			nl.TierMultiplier = *snap.TierMultiplier
		} else {
			nl.TierMultiplier = one
		}
		return
	}

	if product == nil {
		nl.TierMultiplier = one
		nl.MissingProductDoc = true
		return
	}

	// Línea legacy: reconstrucción desde el maestro actual.
	nl.BuyBase = product.Buy
	nl.TierMultiplier = ResolveTierMultiplier(product.TierPricing, nl.Qty)
	nl.BuyUnitPrice = nl.BuyBase.Mul(nl.TierMultiplier)
	nl.BuyLineTotal = nl.BuyUnitPrice.Mul(qty)
	nl.IsLegacyCalc = true
}
