package inventory

import (
	"context"

	"github.com/jhoicas/stock-control/internal/domain/entity"
	"github.com/jhoicas/stock-control/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace Rollback; si no, Commit.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		movRepo repository.MovementRepository,
	) error) error
}

// LowStockNotifier aviso best-effort de stock bajo. Devuelve true si la condición se cumple
// (y por tanto se avisó). No debe fallar la operación que lo invoca.
type LowStockNotifier interface {
	NotifyLowStock(ctx context.Context, product *entity.Product) bool
}
