package inventory

import (
	"context"

	"github.com/jhoicas/stock-control/internal/application/auth"
	"github.com/jhoicas/stock-control/internal/application/dto"
	"github.com/jhoicas/stock-control/internal/domain"
	"github.com/jhoicas/stock-control/internal/domain/entity"
	"github.com/jhoicas/stock-control/internal/domain/repository"
)

const maxHistoryLimit = 500

// HistoryUseCase consulta el historial de movimientos (más recientes primero).
type HistoryUseCase struct {
	movRepo      repository.MovementRepository
	defaultLimit int
}

// NewHistoryUseCase construye el caso de uso. defaultLimit se usa cuando la consulta no trae límite.
func NewHistoryUseCase(movRepo repository.MovementRepository, defaultLimit int) *HistoryUseCase {
	if defaultLimit <= 0 {
		defaultLimit = 100
	}
	return &HistoryUseCase{movRepo: movRepo, defaultLimit: defaultLimit}
}

// List devuelve los N movimientos más recientes según los filtros.
func (uc *HistoryUseCase) List(ctx context.Context, q dto.MovementQuery) (*dto.MovementListResponse, error) {
	if _, err := auth.RequireAuthenticated(ctx); err != nil {
		return nil, err
	}
	limit := q.Limit
	if limit <= 0 {
		limit = uc.defaultLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	kind := entity.MovementType(q.Type)
	if kind != "" && !kind.Valid() {
		return nil, domain.NewValidationError("type", "tipo de movimiento inválido")
	}
	list, err := uc.movRepo.List(ctx, repository.MovementFilter{
		ProductID: q.ProductID,
		Type:      kind,
		Limit:     limit,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *dto.ToMovementDetailResponse(m))
	}
	return &dto.MovementListResponse{Items: items, Total: len(items)}, nil
}
