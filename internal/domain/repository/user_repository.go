package repository

import (
	"context"

	"github.com/jhoicas/stock-control/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Los métodos Get* devuelven (nil, nil) cuando el usuario no existe.
type UserRepository interface {
	// Create devuelve domain.ErrEmailAlreadyExists si el email ya está registrado.
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	ListActive(ctx context.Context) ([]*entity.User, error)
	SetActive(ctx context.Context, id int64, active bool) error
	// Deactivate desactiva un usuario activo en una sola operación atómica. Devuelve
	// domain.ErrConflict si es el último administrador activo y domain.ErrUserNotFound
	// si no existe o ya estaba inactivo.
	Deactivate(ctx context.Context, id int64) error
	CountActiveAdmins(ctx context.Context) (int, error)
}
