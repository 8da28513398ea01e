package inventory

import (
	"context"

	"github.com/jhoicas/stock-control/internal/application/dto"
	"github.com/jhoicas/stock-control/internal/domain/entity"
)

// RegisterMovementFromRequest adapta el request HTTP al caso de uso RegisterMovement(ctx, MovementInputDTO).
func (uc *RegisterMovementUseCase) RegisterMovementFromRequest(
	ctx context.Context,
	productID int64,
	kind entity.MovementType,
	in dto.RegisterMovementRequest,
) (*dto.MovementResultResponse, error) {
	input := MovementInputDTO{
		ProductID: productID,
		Type:      kind,
		Quantity:  in.Quantity,
		Notes:     in.Notes,
	}
	return uc.RegisterMovement(ctx, input)
}
