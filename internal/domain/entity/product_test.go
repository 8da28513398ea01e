package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/stock-control/internal/domain/entity"
)

func TestProduct_IsLowStock_Limites(t *testing.T) {
	p := &entity.Product{Quantity: 5, MinQuantity: 5}
	assert.True(t, p.IsLowStock(), "cantidad igual al mínimo es stock bajo")

	p.Quantity = 6
	assert.False(t, p.IsLowStock(), "mínimo + 1 no es stock bajo")

	p.Quantity = 0
	assert.True(t, p.IsLowStock())
}

func TestProduct_Shortfall(t *testing.T) {
	assert.Equal(t, 3, (&entity.Product{Quantity: 2, MinQuantity: 5}).Shortfall())
	assert.Equal(t, 0, (&entity.Product{Quantity: 5, MinQuantity: 5}).Shortfall())
	assert.Equal(t, 0, (&entity.Product{Quantity: 9, MinQuantity: 5}).Shortfall())
}

func TestProduct_StockValue(t *testing.T) {
	p := &entity.Product{Price: decimal.RequireFromString("2.50"), Quantity: 4}
	assert.True(t, decimal.NewFromInt(10).Equal(p.StockValue()))
}

func TestMovementType_Valid(t *testing.T) {
	assert.True(t, entity.MovementTypeIn.Valid())
	assert.True(t, entity.MovementTypeOut.Valid())
	assert.False(t, entity.MovementType("ajuste").Valid())
}
