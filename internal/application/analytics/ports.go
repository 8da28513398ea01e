package analytics

import (
	"context"

	"github.com/jhoicas/stock-control/internal/application/dto"
)

// ReportPDFGenerator genera el PDF del reporte de inventario.
type ReportPDFGenerator interface {
	GenerateReportPDF(ctx context.Context, report *dto.ReportSummaryDTO) ([]byte, error)
}

// ReportXMLExporter serializa el reporte de inventario a XML.
type ReportXMLExporter interface {
	ExportReportXML(ctx context.Context, report *dto.ReportSummaryDTO) ([]byte, error)
}
