package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-control/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	t.Setenv("JWT_SECRET", "secreto")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, 5, cfg.Inventory.DefaultMinQuantity)
	assert.Equal(t, 100, cfg.Inventory.MovementsLimit)
	assert.Equal(t, "admin@sistema.com", cfg.Seed.AdminEmail)
	assert.Equal(t, "0.0.0.0:1531", cfg.HTTP.Addr())
	assert.Equal(t, "session", cfg.Session.CookieName)
}

func TestLoad_EnvSobrescribe(t *testing.T) {
	t.Setenv("JWT_SECRET", "secreto")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("INVENTORY_DEFAULT_MIN_QUANTITY", "10")
	t.Setenv("SESSION_COOKIE_SECURE", "true")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, 10, cfg.Inventory.DefaultMinQuantity)
	assert.True(t, cfg.Session.Secure)
}

func TestLoad_SinSecretoFalla(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestDBConfig_DSNEscapaPassword(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss/word", DBName: "estoque", SSLMode: "disable"}

	assert.Equal(t, "postgres://app:p%40ss%2Fword@db:5432/estoque?sslmode=disable", c.DSN())
	assert.Equal(t, c.DSN(), c.ConnectionString())

	c.DatabaseURL = "postgres://otro"
	assert.Equal(t, "postgres://otro", c.ConnectionString())
}
