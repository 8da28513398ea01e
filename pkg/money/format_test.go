package money_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/stock-control/pkg/money"
)

func TestFormatter_PortuguesBrasil(t *testing.T) {
	f := money.NewFormatter("pt-BR")

	assert.Equal(t, "R$ 12.345,50", f.Amount(decimal.RequireFromString("12345.5")))
	assert.Equal(t, "R$ 0,00", f.Amount(decimal.Zero))
	assert.Equal(t, "40,00", f.Number(decimal.NewFromInt(40)))
}

func TestFormatter_EtiquetaInvalidaUsaPadrao(t *testing.T) {
	f := money.NewFormatter("??")

	assert.Equal(t, "R$ 10,00", f.Amount(decimal.NewFromInt(10)))
}

func TestFormatter_MontosGrandesSinPerdida(t *testing.T) {
	f := money.NewFormatter("pt-BR")

	assert.Equal(t, "21.474.836.467.852.516.352,01", f.Number(decimal.RequireFromString("21474836467852516352.01")))
	assert.Equal(t, "90.071.992.547.409,93", f.Number(decimal.RequireFromString("90071992547409.93")))
	assert.Equal(t, "-1.234,57", f.Number(decimal.RequireFromString("-1234.567")))
	assert.Equal(t, "999,00", f.Number(decimal.NewFromInt(999)))
}

func TestFormatter_InglesEstadosUnidos(t *testing.T) {
	f := money.NewFormatter("en-US")

	assert.Equal(t, "US$ 1,234,567.89", f.Amount(decimal.RequireFromString("1234567.89")))
}
