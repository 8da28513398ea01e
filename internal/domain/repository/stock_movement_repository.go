package repository

import (
	"context"
	"time"

	"github.com/jhoicas/stock-control/internal/domain/entity"
)

// MovementFilter criterios del historial de movimientos. Los campos cero no filtran.
type MovementFilter struct {
	ProductID int64
	Type      entity.MovementType
	Limit     int
}

// MovementRepository define el puerto de persistencia para movimientos (solo inserción y lectura).
type MovementRepository interface {
	Create(ctx context.Context, movement *entity.Movement) error
	// List devuelve los movimientos más recientes primero.
	List(ctx context.Context, filter MovementFilter) ([]*entity.MovementDetail, error)
	CountSince(ctx context.Context, since time.Time) (int, error)
}
