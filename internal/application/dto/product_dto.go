package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-control/internal/domain/entity"
)

// CreateProductRequest entrada para crear un producto.
// MinQuantity nil usa el mínimo por defecto configurado.
type CreateProductRequest struct {
	Name        string          `json:"name" form:"name"`
	Price       decimal.Decimal `json:"price" form:"price"`
	Quantity    int             `json:"quantity" form:"quantity"`
	MinQuantity *int            `json:"min_quantity" form:"min_quantity"`
}

// UpdateProductRequest entrada para editar un producto (sin Quantity: el stock cambia solo vía movimientos).
type UpdateProductRequest struct {
	Name        *string          `json:"name" form:"name"`
	Price       *decimal.Decimal `json:"price" form:"price"`
	MinQuantity *int             `json:"min_quantity" form:"min_quantity"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	MinQuantity int             `json:"min_quantity"`
	LowStock    bool            `json:"low_stock"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ProductListResponse lista de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Total int               `json:"total"`
}

// ToProductResponse mapea la entidad a su representación de salida.
func ToProductResponse(p *entity.Product) *ProductResponse {
	if p == nil {
		return nil
	}
	return &ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price,
		Quantity:    p.Quantity,
		MinQuantity: p.MinQuantity,
		LowStock:    p.IsLowStock(),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
