package inventory

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jhoicas/stock-control/internal/application/auth"
	"github.com/jhoicas/stock-control/internal/application/dto"
	"github.com/jhoicas/stock-control/internal/domain"
	"github.com/jhoicas/stock-control/internal/domain/entity"
	"github.com/jhoicas/stock-control/internal/domain/inventory"
	"github.com/jhoicas/stock-control/internal/domain/repository"
)

const maxNotesLength = 255

// RegisterMovementUseCase registra entradas y salidas de forma transaccional: bloquea la fila
// del producto (SELECT FOR UPDATE), valida, actualiza el stock y agrega el movimiento en la misma tx.
type RegisterMovementUseCase struct {
	txRunner TxRunner
	notifier LowStockNotifier
	now      func() time.Time
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(txRunner TxRunner, notifier LowStockNotifier) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{
		txRunner: txRunner,
		notifier: notifier,
		now:      time.Now,
	}
}

// MovementInputDTO entrada para registrar un movimiento. El usuario sale del principal del contexto.
type MovementInputDTO struct {
	ProductID int64
	Type      entity.MovementType
	Quantity  int
	Notes     string
}

// RegisterMovement valida la entrada, ejecuta la tx y, tras el Commit, invoca el aviso de stock bajo.
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, input MovementInputDTO) (*dto.MovementResultResponse, error) {
	principal, err := auth.RequireAuthenticated(ctx)
	if err != nil {
		return nil, err
	}
	if !input.Type.Valid() {
		return nil, domain.NewValidationError("type", "tipo de movimiento inválido")
	}
	if err := inventory.ValidateQuantity(input.Quantity); err != nil {
		return nil, err
	}
	notes := strings.TrimSpace(input.Notes)
	if utf8.RuneCountInString(notes) > maxNotesLength {
		return nil, domain.NewValidationError("notes", "las observaciones admiten hasta 255 caracteres")
	}

	now := uc.now()
	var (
		product  *entity.Product
		movement *entity.Movement
	)
	err = uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, movRepo repository.MovementRepository) error {
		// Bloquea la fila para que dos salidas concurrentes no dejen el stock negativo
		p, err := productRepo.GetForUpdate(ctx, input.ProductID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrProductNotFound
		}
		if err := inventory.Apply(p, input.Type, input.Quantity, now); err != nil {
			return err
		}
		if err := productRepo.UpdateQuantity(ctx, p); err != nil {
			return err
		}
		m := &entity.Movement{
			ProductID: p.ID,
			UserID:    principal.UserID,
			Type:      input.Type,
			Quantity:  input.Quantity,
			Notes:     notes,
			CreatedAt: now,
		}
		if err := movRepo.Create(ctx, m); err != nil {
			return err
		}
		product, movement = p, m
		return nil
	})
	if err != nil {
		return nil, err
	}

	alert := false
	if uc.notifier != nil {
		alert = uc.notifier.NotifyLowStock(ctx, product)
	}
	return &dto.MovementResultResponse{
		Product:       *dto.ToProductResponse(product),
		Movement:      *dto.ToMovementResponse(movement),
		LowStockAlert: alert,
	}, nil
}

// RegisterInbound registra una entrada de stock.
func (uc *RegisterMovementUseCase) RegisterInbound(ctx context.Context, productID int64, quantity int, notes string) (*dto.MovementResultResponse, error) {
	return uc.RegisterMovement(ctx, MovementInputDTO{ProductID: productID, Type: entity.MovementTypeIn, Quantity: quantity, Notes: notes})
}

// RegisterOutbound registra una salida de stock; falla con ErrInsufficientStock si supera el stock actual.
func (uc *RegisterMovementUseCase) RegisterOutbound(ctx context.Context, productID int64, quantity int, notes string) (*dto.MovementResultResponse, error) {
	return uc.RegisterMovement(ctx, MovementInputDTO{ProductID: productID, Type: entity.MovementTypeOut, Quantity: quantity, Notes: notes})
}
