// Package inventory contiene las reglas puras de stock (sin E/S).
package inventory

import (
	"math"
	"time"

	"github.com/jhoicas/stock-control/internal/domain"
	"github.com/jhoicas/stock-control/internal/domain/entity"
)

// MaxQuantity tope de las columnas INTEGER de cantidad y mínimo.
const MaxQuantity = math.MaxInt32

// ValidateQuantity exige una cantidad entera positiva, dentro de MaxQuantity, para cualquier movimiento.
func ValidateQuantity(quantity int) error {
	if quantity <= 0 {
		return domain.NewValidationError("quantity", "la cantidad debe ser mayor que cero")
	}
	if quantity > MaxQuantity {
		return domain.NewValidationError("quantity", "la cantidad supera el máximo permitido")
	}
	return nil
}

// ValidateStockLevel valida una cantidad en stock o un mínimo: entre 0 y MaxQuantity.
func ValidateStockLevel(field string, value int) error {
	if value < 0 {
		return domain.NewValidationError(field, "no puede ser negativo")
	}
	if value > MaxQuantity {
		return domain.NewValidationError(field, "supera el máximo permitido")
	}
	return nil
}

// ApplyInbound suma la cantidad al stock y marca la fecha de actualización.
func ApplyInbound(p *entity.Product, quantity int, now time.Time) error {
	if err := ValidateQuantity(quantity); err != nil {
		return err
	}
	if p.Quantity > MaxQuantity-quantity {
		return domain.NewValidationError("quantity", "la entrada supera la capacidad máxima de stock")
	}
	p.Quantity += quantity
	p.UpdatedAt = now
	return nil
}

// ApplyOutbound resta la cantidad del stock. Si la cantidad supera el stock actual
// devuelve ErrInsufficientStock y no modifica el producto.
func ApplyOutbound(p *entity.Product, quantity int, now time.Time) error {
	if err := ValidateQuantity(quantity); err != nil {
		return err
	}
	if quantity > p.Quantity {
		return domain.ErrInsufficientStock
	}
	p.Quantity -= quantity
	p.UpdatedAt = now
	return nil
}

// Apply aplica un movimiento según su tipo.
func Apply(p *entity.Product, kind entity.MovementType, quantity int, now time.Time) error {
	switch kind {
	case entity.MovementTypeIn:
		return ApplyInbound(p, quantity, now)
	case entity.MovementTypeOut:
		return ApplyOutbound(p, quantity, now)
	}
	return domain.NewValidationError("type", "tipo de movimiento inválido")
}
