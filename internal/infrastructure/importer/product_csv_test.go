package importer_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/jhoicas/stock-control/internal/infrastructure/importer"
)

func TestReadProducts_ConEncabezado(t *testing.T) {
	in := "nombre;precio;cantidad;minimo\nCaneta;2,50;10;3\nCaderno;12.90;4;\n"

	rows, err := importer.ReadProducts(strings.NewReader(in), importer.EncodingUTF8, ';')
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Caneta", rows[0].Name)
	assert.True(t, rows[0].Price.Equal(decimal.RequireFromString("2.50")))
	assert.Equal(t, 10, rows[0].Quantity)
	require.NotNil(t, rows[0].MinQuantity)
	assert.Equal(t, 3, *rows[0].MinQuantity)

	assert.Equal(t, "Caderno", rows[1].Name)
	assert.Nil(t, rows[1].MinQuantity)
}

func TestReadProducts_Latin1(t *testing.T) {
	encoded, err := charmap.ISO8859_1.NewEncoder().String("Lápiz,1.00,5\n")
	require.NoError(t, err)

	rows, err := importer.ReadProducts(bytes.NewReader([]byte(encoded)), importer.EncodingLatin1, ',')
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Lápiz", rows[0].Name)
}

func TestReadProducts_LineaInvalida(t *testing.T) {
	in := "Caneta,2.50,10\nBorracha,abc,1\n"

	_, err := importer.ReadProducts(strings.NewReader(in), "", ',')
	require.Error(t, err)

	var rowErr *importer.RowError
	require.True(t, errors.As(err, &rowErr))
	assert.Equal(t, 2, rowErr.Line)
}

func TestReadProducts_EncodingDesconocido(t *testing.T) {
	_, err := importer.ReadProducts(strings.NewReader(""), "ebcdic", ',')
	assert.Error(t, err)
}
