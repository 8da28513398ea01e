package inventory

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-control/internal/domain/entity"
)

// Report cifras agregadas del inventario.
type Report struct {
	TotalProducts  int
	TotalValue     decimal.Decimal // Σ precio × cantidad
	LowStockCount  int
	OKCount        int
	MovementsToday int
	LowStock       []*entity.Product // ordenados por mayor déficit
}

// BuildReport agrega la lista de productos ya cargada. movementsToday lo calcula el repositorio
// con StartOfDay como límite inferior.
func BuildReport(products []*entity.Product, movementsToday int) Report {
	r := Report{
		TotalProducts:  len(products),
		TotalValue:     decimal.Zero,
		MovementsToday: movementsToday,
	}
	for _, p := range products {
		r.TotalValue = r.TotalValue.Add(p.StockValue())
	}
	r.LowStock = LowStock(products)
	r.LowStockCount = len(r.LowStock)
	r.OKCount = r.TotalProducts - r.LowStockCount
	return r
}

// LowStock filtra los productos con stock bajo y los ordena por mayor déficit;
// a igual déficit, por nombre.
func LowStock(products []*entity.Product) []*entity.Product {
	out := make([]*entity.Product, 0)
	for _, p := range products {
		if p.IsLowStock() {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Shortfall() != b.Shortfall() {
			return a.Shortfall() > b.Shortfall()
		}
		return a.Name < b.Name
	})
	return out
}

// StartOfDay devuelve las 00:00 del día calendario de t en su zona horaria.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
