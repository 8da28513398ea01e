package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultMinQuantity umbral de stock mínimo cuando no se informa otro.
const DefaultMinQuantity = 5

// Product representa un producto del inventario.
// Quantity solo cambia vía movimientos (entrada/salida); nunca se edita directamente.
type Product struct {
	ID          int64
	Name        string
	Price       decimal.Decimal // precio unitario, >= 0
	Quantity    int             // stock actual, nunca negativo
	MinQuantity int             // umbral de stock bajo
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsLowStock indica si el stock actual está en o por debajo del mínimo.
func (p *Product) IsLowStock() bool {
	return p.Quantity <= p.MinQuantity
}

// Shortfall cuántas unidades faltan para alcanzar el mínimo (0 si no falta nada).
func (p *Product) Shortfall() int {
	if d := p.MinQuantity - p.Quantity; d > 0 {
		return d
	}
	return 0
}

// StockValue precio × cantidad en stock.
func (p *Product) StockValue() decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(int64(p.Quantity)))
}
