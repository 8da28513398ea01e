package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-control/internal/application/auth"
	"github.com/jhoicas/stock-control/internal/domain"
)

func TestGuards(t *testing.T) {
	anon := context.Background()
	user := auth.WithPrincipal(anon, auth.Principal{UserID: 2})
	admin := auth.WithPrincipal(anon, auth.Principal{UserID: 1, IsAdmin: true})

	_, err := auth.RequireAuthenticated(anon)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = auth.RequireAdmin(anon)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	p, err := auth.RequireAuthenticated(user)
	require.NoError(t, err)
	assert.Equal(t, int64(2), p.UserID)
	_, err = auth.RequireAdmin(user)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	p, err = auth.RequireAdmin(admin)
	require.NoError(t, err)
	assert.True(t, p.IsAdmin)
}

func TestPrincipalFrom_IDInvalido(t *testing.T) {
	ctx := auth.WithPrincipal(context.Background(), auth.Principal{UserID: 0, IsAdmin: true})
	_, ok := auth.PrincipalFrom(ctx)
	assert.False(t, ok)
}

func TestCheck_ComponeGuards(t *testing.T) {
	called := false
	custom := func(p auth.Principal, _ bool) error {
		called = true
		if p.UserID != 5 {
			return domain.ErrForbidden
		}
		return nil
	}
	ctx := auth.WithPrincipal(context.Background(), auth.Principal{UserID: 5})
	_, err := auth.Check(ctx, auth.Authenticated, custom)
	assert.NoError(t, err)
	assert.True(t, called)

	called = false
	_, err = auth.Check(context.Background(), auth.Authenticated, custom)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.False(t, called)
}
