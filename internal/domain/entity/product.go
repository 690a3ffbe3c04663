package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa el maestro de productos del catálogo.
// Buy es el costo de compra base (sin descuento por volumen); TierPricing son
// las bandas de cantidad que ajustan ese costo.
type Product struct {
	ID               string
	Name             string
	ManufacturerID   string
	ManufacturerName string
	Buy              decimal.Decimal
	TierPricing      []PriceTier
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// PriceTier es una banda de cantidad [Min, Max] con su multiplicador de costo.
// Las bandas se asumen sin solapamiento y ordenadas ascendente por Min.
type PriceTier struct {
	Min        int64           `json:"min"`
	Max        int64           `json:"max"`
	Multiplier decimal.Decimal `json:"multiplier"`
}
