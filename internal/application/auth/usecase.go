package auth

import (
	"context"
	"strings"

	"github.com/jhoicas/stock-control/internal/application/dto"
	"github.com/jhoicas/stock-control/internal/domain"
	"github.com/jhoicas/stock-control/internal/domain/repository"
	"github.com/jhoicas/stock-control/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: login y resolución de la sesión.
type AuthUseCase struct {
	userRepo repository.UserRepository
	hasher   PasswordHasher
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, hasher PasswordHasher, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, hasher: hasher, jwtCfg: jwtCfg}
}

// Login verifica email/password, genera el token de sesión y retorna token + usuario.
// Usuario inexistente y contraseña incorrecta devuelven el mismo error.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	email := NormalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return nil, domain.NewValidationError("", "email y contraseña son obligatorios")
	}
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil || !uc.hasher.Verify(user.PasswordHash, in.Password) {
		return nil, domain.ErrInvalidCredentials
	}
	if !user.Active {
		return nil, domain.ErrInvalidCredentials
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.IsAdmin, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *dto.ToUserResponse(user),
	}, nil
}

// ParseToken valida el token de sesión y devuelve el id del usuario.
func (uc *AuthUseCase) ParseToken(token string) (int64, error) {
	userID, _, err := jwt.Parse(uc.jwtCfg.Secret, token)
	if err != nil {
		return 0, domain.ErrUnauthorized
	}
	return userID, nil
}

// ResolvePrincipal relee el usuario para que una desactivación o un cambio de rol
// tenga efecto inmediato aunque el token siga vigente.
func (uc *AuthUseCase) ResolvePrincipal(ctx context.Context, userID int64) (Principal, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return Principal{}, err
	}
	if user == nil || !user.Active {
		return Principal{}, domain.ErrUnauthorized
	}
	return Principal{UserID: user.ID, IsAdmin: user.IsAdmin}, nil
}

// Me devuelve el usuario de la sesión actual.
func (uc *AuthUseCase) Me(ctx context.Context) (*dto.UserResponse, error) {
	p, err := RequireAuthenticated(ctx)
	if err != nil {
		return nil, err
	}
	user, err := uc.userRepo.GetByID(ctx, p.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return dto.ToUserResponse(user), nil
}

// NormalizeEmail recorta espacios y pasa a minúsculas.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
