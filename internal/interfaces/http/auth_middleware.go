package http

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-control/internal/application/auth"
	"github.com/jhoicas/stock-control/internal/application/dto"
	"github.com/jhoicas/stock-control/internal/domain"
)

// Locals keys para UserID e IsAdmin en Fiber.
const (
	LocalUserID  = "user_id"
	LocalIsAdmin = "is_admin"
)

// SessionResolver valida el token y relee el usuario. Lo implementa auth.AuthUseCase.
type SessionResolver interface {
	ParseToken(token string) (int64, error)
	ResolvePrincipal(ctx context.Context, userID int64) (auth.Principal, error)
}

// AuthMiddleware acepta el token desde la cookie de sesión o como Bearer Token,
// resuelve el principal contra la base y lo deja en c.UserContext() y en c.Locals.
func AuthMiddleware(resolver SessionResolver, cookieName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, errResp := extractToken(c, cookieName)
		if errResp != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(errResp)
		}
		userID, err := resolver.ParseToken(tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		principal, err := resolver.ResolvePrincipal(c.UserContext(), userID)
		if err != nil {
			if errors.Is(err, domain.ErrUnauthorized) {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_SESSION", Message: "usuario inactivo o inexistente"})
			}
			return writeError(c, err)
		}
		c.SetUserContext(auth.WithPrincipal(c.UserContext(), principal))
		c.Locals(LocalUserID, principal.UserID)
		c.Locals(LocalIsAdmin, principal.IsAdmin)
		return c.Next()
	}
}

func extractToken(c *fiber.Ctx, cookieName string) (string, *dto.ErrorResponse) {
	if cookieName != "" {
		if v := strings.TrimSpace(c.Cookies(cookieName)); v != "" {
			return v, nil
		}
	}
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return "", &dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "sesión o Authorization header requerido"}
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", &dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"}
	}
	tokenString := strings.TrimSpace(parts[1])
	if tokenString == "" {
		return "", &dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"}
	}
	return tokenString, nil
}

// RequireAdmin corta con 403 si el principal no es administrador. Va después de AuthMiddleware.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := auth.RequireAdmin(c.UserContext()); err != nil {
			return writeError(c, err)
		}
		return c.Next()
	}
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) int64 {
	v, _ := c.Locals(LocalUserID).(int64)
	return v
}

// IsAdmin indica si la sesión actual es de administrador.
func IsAdmin(c *fiber.Ctx) bool {
	v, _ := c.Locals(LocalIsAdmin).(bool)
	return v
}
