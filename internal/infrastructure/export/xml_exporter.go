// Package export serializa el reporte de inventario a XML.
package export

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/beevik/etree"

	"github.com/jhoicas/stock-control/internal/application/analytics"
	"github.com/jhoicas/stock-control/internal/application/dto"
)

var _ analytics.ReportXMLExporter = (*XMLExporter)(nil)

// XMLExporter implementa analytics.ReportXMLExporter con etree.
//
//	<StockReport generatedAt="...">
//	  <Summary totalProducts=".." totalValue=".." lowStock=".." ok=".." movementsToday=".."/>
//	  <LowStock>
//	    <Product id=".." priority=".." quantity=".." minQuantity=".." shortfall="..">Nombre</Product>
//	  </LowStock>
//	</StockReport>
type XMLExporter struct{}

// NewXMLExporter construye el exportador.
func NewXMLExporter() *XMLExporter { return &XMLExporter{} }

// ExportReportXML serializa el reporte con sangría de dos espacios.
func (e *XMLExporter) ExportReportXML(_ context.Context, report *dto.ReportSummaryDTO) ([]byte, error) {
	if report == nil {
		return nil, fmt.Errorf("export: reporte nil")
	}
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("StockReport")
	root.CreateAttr("generatedAt", report.GeneratedAt.UTC().Format(time.RFC3339))

	summary := root.CreateElement("Summary")
	summary.CreateAttr("totalProducts", strconv.Itoa(report.TotalProducts))
	summary.CreateAttr("totalValue", report.TotalValue.StringFixed(2))
	summary.CreateAttr("lowStock", strconv.Itoa(report.LowStockCount))
	summary.CreateAttr("ok", strconv.Itoa(report.OKCount))
	summary.CreateAttr("movementsToday", strconv.Itoa(report.MovementsToday))

	low := root.CreateElement("LowStock")
	for _, it := range report.LowStock {
		p := low.CreateElement("Product")
		p.CreateAttr("id", strconv.FormatInt(it.ProductID, 10))
		p.CreateAttr("priority", strconv.Itoa(it.Priority))
		p.CreateAttr("quantity", strconv.Itoa(it.Quantity))
		p.CreateAttr("minQuantity", strconv.Itoa(it.MinQuantity))
		p.CreateAttr("shortfall", strconv.Itoa(it.Shortfall))
		p.SetText(it.Name)
	}

	doc.Indent(2)
	var out bytes.Buffer
	if _, err := doc.WriteTo(&out); err != nil {
		return nil, fmt.Errorf("export: escribir XML: %w", err)
	}
	return out.Bytes(), nil
}
