package repository

import (
	"context"

	"github.com/jhoicas/stock-control/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Los métodos Get* devuelven (nil, nil) cuando el producto no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	// GetForUpdate bloquea la fila hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id int64) (*entity.Product, error)
	// Update modifica nombre, precio y mínimo. No toca Quantity.
	Update(ctx context.Context, product *entity.Product) error
	// UpdateQuantity persiste el stock tras un movimiento.
	UpdateQuantity(ctx context.Context, product *entity.Product) error
	List(ctx context.Context) ([]*entity.Product, error)
}
