package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jhoicas/stock-control/internal/application/auth"
	"github.com/jhoicas/stock-control/internal/application/dto"
	"github.com/jhoicas/stock-control/internal/domain"
	"github.com/jhoicas/stock-control/internal/domain/entity"
	"github.com/jhoicas/stock-control/internal/domain/repository"
)

const (
	maxUserNameLength = 100
	maxEmailLength    = 120
)

// UserUseCase aplica reglas de negocio para usuarios. Todas las operaciones,
// salvo EnsureAdmin, requieren un administrador.
type UserUseCase struct {
	repo   repository.UserRepository
	hasher auth.PasswordHasher
	now    func() time.Time
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository, hasher auth.PasswordHasher) *UserUseCase {
	return &UserUseCase{repo: repo, hasher: hasher, now: time.Now}
}

// Create registra un usuario. Devuelve ErrEmailAlreadyExists si el email ya está registrado.
func (uc *UserUseCase) Create(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if _, err := auth.RequireAdmin(ctx); err != nil {
		return nil, err
	}
	return uc.create(ctx, in)
}

func (uc *UserUseCase) create(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	name := strings.TrimSpace(in.Name)
	email := auth.NormalizeEmail(in.Email)
	if name == "" || email == "" || in.Password == "" {
		return nil, domain.NewValidationError("", "nombre, email y contraseña son obligatorios")
	}
	if utf8.RuneCountInString(name) > maxUserNameLength {
		return nil, domain.NewValidationError("name", "el nombre admite hasta 100 caracteres")
	}
	if !strings.Contains(email, "@") {
		return nil, domain.NewValidationError("email", "email inválido")
	}
	if utf8.RuneCountInString(email) > maxEmailLength {
		return nil, domain.NewValidationError("email", "el email admite hasta 120 caracteres")
	}
	existing, err := uc.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := uc.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	user := &entity.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		IsAdmin:      in.IsAdmin,
		Active:       true,
		CreatedAt:    uc.now(),
	}
	// La restricción UNIQUE cubre la carrera entre la consulta y el INSERT
	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return dto.ToUserResponse(user), nil
}

// ListActive lista los usuarios activos.
func (uc *UserUseCase) ListActive(ctx context.Context) (*dto.UserListResponse, error) {
	if _, err := auth.RequireAdmin(ctx); err != nil {
		return nil, err
	}
	list, err := uc.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *dto.ToUserResponse(u))
	}
	return &dto.UserListResponse{Items: items, Total: len(items)}, nil
}

// Deactivate desactiva un usuario. No permite desactivarse a sí mismo ni dejar el sistema sin administradores.
func (uc *UserUseCase) Deactivate(ctx context.Context, id int64) error {
	principal, err := auth.RequireAdmin(ctx)
	if err != nil {
		return err
	}
	if principal.UserID == id {
		return domain.ErrConflict
	}
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil || !user.Active {
		return domain.ErrUserNotFound
	}
	// el repositorio vuelve a comprobar el último administrador dentro del mismo UPDATE
	return uc.repo.Deactivate(ctx, id)
}

// SeedAdmin datos del administrador inicial.
type SeedAdmin struct {
	Name     string
	Email    string
	Password string
}

// EnsureAdmin garantiza un administrador activo al arrancar, fuera de cualquier sesión.
// Si el email semilla ya pertenece a un administrador desactivado, lo reactiva.
// created=false si ya había un administrador activo.
func (uc *UserUseCase) EnsureAdmin(ctx context.Context, seed SeedAdmin) (created bool, err error) {
	admins, err := uc.repo.CountActiveAdmins(ctx)
	if err != nil {
		return false, err
	}
	if admins > 0 {
		return false, nil
	}
	existing, err := uc.repo.GetByEmail(ctx, auth.NormalizeEmail(seed.Email))
	if err != nil {
		return false, err
	}
	if existing != nil {
		if !existing.IsAdmin {
			return false, fmt.Errorf("el email %s pertenece a un usuario sin privilegios de administrador: %w", existing.Email, domain.ErrConflict)
		}
		if err := uc.repo.SetActive(ctx, existing.ID, true); err != nil {
			return false, err
		}
		return true, nil
	}
	_, err = uc.create(ctx, dto.CreateUserRequest{
		Name:     seed.Name,
		Email:    seed.Email,
		Password: seed.Password,
		IsAdmin:  true,
	})
	if err != nil {
		return false, err
	}
	return true, nil
}
