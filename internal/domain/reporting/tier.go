package reporting

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Pagos-api/internal/domain/entity"
)

var one = decimal.NewFromInt(1)

// ResolveTierMultiplier resuelve el multiplicador de costo según la banda de
// cantidad del fabricante. Reglas:
//   - tabla vacía: 1.0 (sin descuento ni recargo)
//   - primera banda con min ≤ qty ≤ max
//   - si la cantidad supera todas las bandas: la banda de mayor min actúa como
//     banda superior abierta
//
// Función pura y total: nunca falla.
func ResolveTierMultiplier(tiers []entity.PriceTier, qty int64) decimal.Decimal {
	if len(tiers) == 0 {
		return one
	}

	ordered := make([]entity.PriceTier, len(tiers))
	copy(ordered, tiers)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Min < ordered[j].Min })

	for _, t := range ordered {
		if qty >= t.Min && qty <= t.Max {
			return t.Multiplier
		}
	}
	return ordered[len(ordered)-1].Multiplier
}
