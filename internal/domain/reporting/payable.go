package reporting

import "github.com/shopspring/decimal"

// ApplyPayablePolicy calcula el monto a pagar al fabricante por la línea según
// la base de costo configurada y el IVA. Devuelve una copia con
// PayableLineTotal completado, a precisión completa: el redondeo se difiere a
// la salida para no acumular error a lo largo de miles de líneas.
//
// Bases candidatas:
//   - base:   BuyBase × Qty (ignora el multiplicador de banda)
//   - tiered: BuyLineTotal  (honra el multiplicador)
func ApplyPayablePolicy(nl NormalizedLine, cfg Config) NormalizedLine {
	var payable decimal.Decimal
	if cfg.CostBasis == CostBasisBaseOnly {
		payable = nl.BuyBase.Mul(decimal.NewFromInt(nl.Qty))
	} else {
		payable = nl.BuyLineTotal
	}

	if cfg.IncludeVatOnBuy {
		payable = payable.Mul(one.Add(nl.VatRate))
	}

	nl.PayableLineTotal = payable
	return nl
}
