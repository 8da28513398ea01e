// Package importer lee cargas masivas de productos desde archivos CSV.
package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/stock-control/internal/application/dto"
)

// Encodings soportados para el archivo de entrada.
const (
	EncodingUTF8   = "utf8"
	EncodingLatin1 = "latin1"
)

// RowError error de una línea concreta del CSV.
type RowError struct {
	Line int
	Err  error
}

func (e *RowError) Error() string { return fmt.Sprintf("línea %d: %v", e.Line, e.Err) }
func (e *RowError) Unwrap() error { return e.Err }

// ReadProducts lee filas nombre;precio;cantidad[;minimo]. La primera fila se ignora si es un encabezado.
// El separador puede ser ',' o ';'. Con encoding latin1 el archivo se decodifica desde ISO-8859-1.
func ReadProducts(r io.Reader, encoding string, comma rune) ([]dto.CreateProductRequest, error) {
	switch strings.ToLower(encoding) {
	case "", EncodingUTF8, "utf-8":
	case EncodingLatin1, "iso-8859-1":
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	default:
		return nil, fmt.Errorf("encoding no soportado: %s", encoding)
	}

	cr := csv.NewReader(r)
	cr.Comma = comma
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var out []dto.CreateProductRequest
	line := 0
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, &RowError{Line: line, Err: err}
		}
		if line == 1 && isHeader(rec) {
			continue
		}
		if len(rec) == 1 && strings.TrimSpace(rec[0]) == "" {
			continue
		}
		req, err := parseRow(rec)
		if err != nil {
			return nil, &RowError{Line: line, Err: err}
		}
		out = append(out, req)
	}
	return out, nil
}

func isHeader(rec []string) bool {
	if len(rec) == 0 {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(rec[0])) {
	case "name", "nombre", "nome":
		return true
	}
	return false
}

func parseRow(rec []string) (dto.CreateProductRequest, error) {
	if len(rec) < 3 {
		return dto.CreateProductRequest{}, fmt.Errorf("se esperaban al menos 3 columnas, hay %d", len(rec))
	}
	price, err := parsePrice(rec[1])
	if err != nil {
		return dto.CreateProductRequest{}, fmt.Errorf("precio %q inválido", rec[1])
	}
	qty, err := strconv.Atoi(strings.TrimSpace(rec[2]))
	if err != nil {
		return dto.CreateProductRequest{}, fmt.Errorf("cantidad %q inválida", rec[2])
	}
	req := dto.CreateProductRequest{
		Name:     strings.TrimSpace(rec[0]),
		Price:    price,
		Quantity: qty,
	}
	if len(rec) > 3 && strings.TrimSpace(rec[3]) != "" {
		minQty, err := strconv.Atoi(strings.TrimSpace(rec[3]))
		if err != nil {
			return dto.CreateProductRequest{}, fmt.Errorf("mínimo %q inválido", rec[3])
		}
		req.MinQuantity = &minQty
	}
	return req, nil
}

// parsePrice acepta "12.50" y también la coma decimal "12,50".
func parsePrice(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if strings.Contains(s, ",") && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	return decimal.NewFromString(s)
}
