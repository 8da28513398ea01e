// Package pdf implementa el reporte de inventario en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre de la app      │  Fecha de generación        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: Productos | Valor en stock | Stock bajo | Hoy      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Prioridad | Producto | Actual | Mínimo | Déficit     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: leyenda                                             │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/stock-control/internal/application/analytics"
	"github.com/jhoicas/stock-control/internal/application/dto"
	"github.com/jhoicas/stock-control/pkg/money"
)

var _ analytics.ReportPDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 180, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa analytics.ReportPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	title  string
	format *money.Formatter
}

// NewMarotoPDFGenerator construye el generador. title aparece en el encabezado.
func NewMarotoPDFGenerator(title string, format *money.Formatter) *MarotoPDFGenerator {
	if format == nil {
		format = money.NewFormatter("pt-BR")
	}
	return &MarotoPDFGenerator{title: title, format: format}
}

// GenerateReportPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateReportPDF(_ context.Context, report *dto.ReportSummaryDTO) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de inventario", true).
		WithAuthor(g.title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(g.summaryRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionRow(fmt.Sprintf("PRODUCTOS CON STOCK BAJO (%d)", report.LowStockCount)))
	if len(report.LowStock) == 0 {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("Ningún producto por debajo del mínimo.", props.Text{Size: 9, Color: colorGray, Top: 2}),
		)))
	} else {
		m.AddRows(tableHeaderRow())
		for _, r := range tableDetailRows(report.LowStock) {
			m.AddRows(r)
		}
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(row.New(8).Add(col.New(12).Add(
		text.New("Stock bajo: cantidad actual menor o igual al mínimo configurado.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2}),
	)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre de la app (izq) y fecha de generación (der).
func (g *MarotoPDFGenerator) headerRow(report *dto.ReportSummaryDTO) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New(g.title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Reporte de inventario", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Generado: "+report.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

// summaryRow: las cuatro cifras del reporte.
func (g *MarotoPDFGenerator) summaryRow(report *dto.ReportSummaryDTO) core.Row {
	cell := func(label, value string, alert bool) core.Col {
		color := colorPrimary
		if alert {
			color = colorAlert
		}
		return col.New(3).Add(
			text.New(label, props.Text{Size: 7, Color: colorGray, Align: align.Center, Top: 1}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 12, Color: color, Align: align.Center, Top: 6}),
		)
	}
	return row.New(16).Add(
		cell("Productos", g.format.Int(report.TotalProducts), false),
		cell("Valor en stock", g.format.Amount(report.TotalValue), false),
		cell("Stock bajo", g.format.Int(report.LowStockCount), report.LowStockCount > 0),
		cell("Movimientos hoy", g.format.Int(report.MovementsToday), false),
	)
}

func sectionRow(title string) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2}),
	))
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("#", 1, align.Center),
		h("Producto", 5, align.Left),
		h("Actual", 2, align.Right),
		h("Mínimo", 2, align.Right),
		h("Déficit", 2, align.Right),
	)
}

// tableDetailRows: una fila por producto con stock bajo.
func tableDetailRows(items []dto.LowStockItemDTO) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(strconv.Itoa(it.Priority), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(5).Add(text.New(it.Name, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(2).Add(text.New(strconv.Itoa(it.Quantity), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(strconv.Itoa(it.MinQuantity), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(strconv.Itoa(it.Shortfall), props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 1, Right: 1, Color: colorAlert,
			})),
		))
	}
	return result
}
