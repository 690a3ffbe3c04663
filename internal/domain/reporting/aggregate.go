package reporting

import "github.com/shopspring/decimal"

// ManufacturerAggregate acumulado de pagos por fabricante.
type ManufacturerAggregate struct {
	ManufacturerID   string
	ManufacturerName string
	OrderIDs         map[string]struct{}
	LinesCount       int
	TotalQty         int64
	TotalToPay       decimal.Decimal
}

// ProductAggregate acumulado por producto dentro de un fabricante.
type ProductAggregate struct {
	ProductID   string
	ProductName string
	TotalQty    int64
	TotalToPay  decimal.Decimal
}

// SalesAggregate acumulado interno de ventas (ingreso vs costo). Se usa con
// clave de fabricante y con clave de producto; en el segundo caso los campos
// Manufacturer* identifican a quién pertenece el producto.
type SalesAggregate struct {
	ID               string
	Name             string
	ManufacturerID   string
	ManufacturerName string
	OrderIDs         map[string]struct{}
	TotalQty         int64
	Revenue          decimal.Decimal
	Cost             decimal.Decimal
}

// Aggregates es el estado del fold sobre las líneas normalizadas y pagadas.
// El fold es asociativo y conmutativo: dos Aggregates parciales se combinan
// con Merge (suma elemento a elemento, unión de conjuntos de órdenes) sin que
// el orden de procesamiento afecte el resultado. El llamador garantiza que
// ninguna línea entra dos veces.
type Aggregates struct {
	Manufacturers       map[string]*ManufacturerAggregate
	Products            map[string]map[string]*ProductAggregate // fabricante → producto
	SalesByManufacturer map[string]*SalesAggregate
	SalesByProduct      map[string]*SalesAggregate
	Lines               map[string][]NormalizedLine // líneas por fabricante, para estados de cuenta
	OrderIDs            map[string]struct{}         // órdenes distintas del total global
}

// NewAggregates crea un estado de fold vacío.
func NewAggregates() *Aggregates {
	return &Aggregates{
		Manufacturers:       make(map[string]*ManufacturerAggregate),
		Products:            make(map[string]map[string]*ProductAggregate),
		SalesByManufacturer: make(map[string]*SalesAggregate),
		SalesByProduct:      make(map[string]*SalesAggregate),
		Lines:               make(map[string][]NormalizedLine),
		OrderIDs:            make(map[string]struct{}),
	}
}

// Fold incorpora una línea ya normalizada y con política de pago aplicada.
func (a *Aggregates) Fold(nl NormalizedLine) {
	a.OrderIDs[nl.OrderID] = struct{}{}

	man := a.Manufacturers[nl.ManufacturerID]
	if man == nil {
		man = &ManufacturerAggregate{
			ManufacturerID:   nl.ManufacturerID,
			ManufacturerName: nl.ManufacturerName,
			OrderIDs:         make(map[string]struct{}),
		}
		a.Manufacturers[nl.ManufacturerID] = man
	}
	man.OrderIDs[nl.OrderID] = struct{}{}
	man.LinesCount++
	man.TotalQty += nl.Qty
	man.TotalToPay = man.TotalToPay.Add(nl.PayableLineTotal)

	prods := a.Products[nl.ManufacturerID]
	if prods == nil {
		prods = make(map[string]*ProductAggregate)
		a.Products[nl.ManufacturerID] = prods
	}
	prod := prods[nl.ProductID]
	if prod == nil {
		prod = &ProductAggregate{ProductID: nl.ProductID, ProductName: nl.ProductName}
		prods[nl.ProductID] = prod
	}
	prod.TotalQty += nl.Qty
	prod.TotalToPay = prod.TotalToPay.Add(nl.PayableLineTotal)

	foldSales(a.SalesByManufacturer, nl.ManufacturerID, nl.ManufacturerName, nl)
	sp := foldSales(a.SalesByProduct, nl.ProductID, nl.ProductName, nl)
	sp.ManufacturerID = nl.ManufacturerID
	sp.ManufacturerName = nl.ManufacturerName

	a.Lines[nl.ManufacturerID] = append(a.Lines[nl.ManufacturerID], nl)
}

func foldSales(m map[string]*SalesAggregate, id, name string, nl NormalizedLine) *SalesAggregate {
	s := m[id]
	if s == nil {
		s = &SalesAggregate{ID: id, Name: name, OrderIDs: make(map[string]struct{})}
		m[id] = s
	}
	s.OrderIDs[nl.OrderID] = struct{}{}
	s.TotalQty += nl.Qty
	s.Revenue = s.Revenue.Add(nl.SellLineTotal)
	s.Cost = s.Cost.Add(nl.PayableLineTotal)
	return s
}

// Merge combina otro estado parcial dentro de este: sumas elemento a elemento
// y unión de conjuntos de órdenes. Permite repartir el fold en shards sin
// depender del orden de las líneas.
func (a *Aggregates) Merge(b *Aggregates) {
	for id := range b.OrderIDs {
		a.OrderIDs[id] = struct{}{}
	}

	for key, bm := range b.Manufacturers {
		am := a.Manufacturers[key]
		if am == nil {
			am = &ManufacturerAggregate{
				ManufacturerID:   bm.ManufacturerID,
				ManufacturerName: bm.ManufacturerName,
				OrderIDs:         make(map[string]struct{}),
			}
			a.Manufacturers[key] = am
		}
		for id := range bm.OrderIDs {
			am.OrderIDs[id] = struct{}{}
		}
		am.LinesCount += bm.LinesCount
		am.TotalQty += bm.TotalQty
		am.TotalToPay = am.TotalToPay.Add(bm.TotalToPay)
	}

	for manKey, bprods := range b.Products {
		aprods := a.Products[manKey]
		if aprods == nil {
			aprods = make(map[string]*ProductAggregate)
			a.Products[manKey] = aprods
		}
		for key, bp := range bprods {
			ap := aprods[key]
			if ap == nil {
				ap = &ProductAggregate{ProductID: bp.ProductID, ProductName: bp.ProductName}
				aprods[key] = ap
			}
			ap.TotalQty += bp.TotalQty
			ap.TotalToPay = ap.TotalToPay.Add(bp.TotalToPay)
		}
	}

	mergeSales(a.SalesByManufacturer, b.SalesByManufacturer)
	mergeSales(a.SalesByProduct, b.SalesByProduct)

	for key, lines := range b.Lines {
		a.Lines[key] = append(a.Lines[key], lines...)
	}
}

func mergeSales(dst, src map[string]*SalesAggregate) {
	for key, bs := range src {
		as := dst[key]
		if as == nil {
			as = &SalesAggregate{
				ID:               bs.ID,
				Name:             bs.Name,
				ManufacturerID:   bs.ManufacturerID,
				ManufacturerName: bs.ManufacturerName,
				OrderIDs:         make(map[string]struct{}),
			}
			dst[key] = as
		}
		for id := range bs.OrderIDs {
			as.OrderIDs[id] = struct{}{}
		}
		as.TotalQty += bs.TotalQty
		as.Revenue = as.Revenue.Add(bs.Revenue)
		as.Cost = as.Cost.Add(bs.Cost)
	}
}
