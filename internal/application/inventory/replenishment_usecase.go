package inventory

import (
	"context"

	"github.com/jhoicas/stock-control/internal/application/auth"
	"github.com/jhoicas/stock-control/internal/application/dto"
	"github.com/jhoicas/stock-control/internal/domain/entity"
	"github.com/jhoicas/stock-control/internal/domain/inventory"
	"github.com/jhoicas/stock-control/internal/domain/repository"
)

// LowStockUseCase genera la lista de reposición: productos en o bajo su mínimo,
// priorizados por mayor déficit.
type LowStockUseCase struct {
	productRepo repository.ProductRepository
}

// NewLowStockUseCase construye el caso de uso de reposición.
func NewLowStockUseCase(productRepo repository.ProductRepository) *LowStockUseCase {
	return &LowStockUseCase{productRepo: productRepo}
}

// List devuelve los productos con stock bajo con su déficit y prioridad (1 = más urgente).
func (uc *LowStockUseCase) List(ctx context.Context) ([]dto.LowStockItemDTO, error) {
	if _, err := auth.RequireAuthenticated(ctx); err != nil {
		return nil, err
	}
	products, err := uc.productRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return ToLowStockItems(inventory.LowStock(products)), nil
}

// ToLowStockItems mapea productos ya ordenados asignando la prioridad por posición.
func ToLowStockItems(low []*entity.Product) []dto.LowStockItemDTO {
	items := make([]dto.LowStockItemDTO, 0, len(low))
	for i, p := range low {
		items = append(items, dto.LowStockItemDTO{
			ProductID:   p.ID,
			Name:        p.Name,
			Quantity:    p.Quantity,
			MinQuantity: p.MinQuantity,
			Shortfall:   p.Shortfall(),
			Priority:    i + 1,
		})
	}
	return items
}
