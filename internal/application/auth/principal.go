package auth

import (
	"context"

	"github.com/jhoicas/stock-control/internal/domain"
)

// Principal identidad resuelta de la petición en curso.
type Principal struct {
	UserID  int64
	IsAdmin bool
}

type principalKey struct{}

// WithPrincipal adjunta el principal al contexto. La capa HTTP lo llama después de validar la sesión.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFrom devuelve el principal del contexto; ok=false si la petición no está autenticada.
func PrincipalFrom(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	if !ok || p.UserID <= 0 {
		return Principal{}, false
	}
	return p, true
}

// Guard predicado de capacidad evaluado antes de ejecutar una operación.
type Guard func(p Principal, authenticated bool) error

// Authenticated exige una sesión válida.
func Authenticated(_ Principal, authenticated bool) error {
	if !authenticated {
		return domain.ErrUnauthorized
	}
	return nil
}

// Admin exige una sesión válida de administrador.
func Admin(p Principal, authenticated bool) error {
	if err := Authenticated(p, authenticated); err != nil {
		return err
	}
	if !p.IsAdmin {
		return domain.ErrForbidden
	}
	return nil
}

// Check evalúa los guards en orden y devuelve el principal si todos pasan.
func Check(ctx context.Context, guards ...Guard) (Principal, error) {
	p, ok := PrincipalFrom(ctx)
	for _, g := range guards {
		if err := g(p, ok); err != nil {
			return Principal{}, err
		}
	}
	return p, nil
}

// RequireAuthenticated atajo para Check(ctx, Authenticated).
func RequireAuthenticated(ctx context.Context) (Principal, error) {
	return Check(ctx, Authenticated)
}

// RequireAdmin atajo para Check(ctx, Admin).
func RequireAdmin(ctx context.Context) (Principal, error) {
	return Check(ctx, Admin)
}
