// Package analytics contiene los casos de uso del reporte de inventario y sus exportaciones.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/stock-control/internal/application/auth"
	"github.com/jhoicas/stock-control/internal/application/dto"
	appinventory "github.com/jhoicas/stock-control/internal/application/inventory"
	"github.com/jhoicas/stock-control/internal/domain/entity"
	"github.com/jhoicas/stock-control/internal/domain/inventory"
	"github.com/jhoicas/stock-control/internal/domain/repository"
)

// ReportUseCase genera el resumen del inventario: total de productos, valor en stock,
// productos con stock bajo y movimientos del día.
type ReportUseCase struct {
	productRepo repository.ProductRepository
	movRepo     repository.MovementRepository
	pdf         ReportPDFGenerator
	xml         ReportXMLExporter
	now         func() time.Time
}

// NewReportUseCase construye el caso de uso. pdf y xml pueden ser nil si no se exporta.
func NewReportUseCase(
	productRepo repository.ProductRepository,
	movRepo repository.MovementRepository,
	pdf ReportPDFGenerator,
	xml ReportXMLExporter,
) *ReportUseCase {
	return &ReportUseCase{productRepo: productRepo, movRepo: movRepo, pdf: pdf, xml: xml, now: time.Now}
}

// GetSummary construye el ReportSummaryDTO.
//
// Dos consultas en paralelo:
//  1. List()                    → productos (total, valor, stock bajo)
//  2. CountSince(inicio de hoy) → movimientos del día
func (uc *ReportUseCase) GetSummary(ctx context.Context) (*dto.ReportSummaryDTO, error) {
	if _, err := auth.RequireAuthenticated(ctx); err != nil {
		return nil, err
	}
	now := uc.now()

	type productsResult struct {
		products []*entity.Product
		err      error
	}
	type countResult struct {
		n   int
		err error
	}
	productsCh := make(chan productsResult, 1)
	countCh := make(chan countResult, 1)

	go func() {
		products, err := uc.productRepo.List(ctx)
		productsCh <- productsResult{products, err}
	}()
	go func() {
		n, err := uc.movRepo.CountSince(ctx, inventory.StartOfDay(now))
		countCh <- countResult{n, err}
	}()

	products := <-productsCh
	count := <-countCh

	if products.err != nil {
		return nil, fmt.Errorf("report: productos: %w", products.err)
	}
	if count.err != nil {
		return nil, fmt.Errorf("report: movimientos del día: %w", count.err)
	}

	r := inventory.BuildReport(products.products, count.n)
	return &dto.ReportSummaryDTO{
		GeneratedAt:    now,
		TotalProducts:  r.TotalProducts,
		TotalValue:     r.TotalValue.Round(2),
		LowStockCount:  r.LowStockCount,
		OKCount:        r.OKCount,
		MovementsToday: r.MovementsToday,
		LowStock:       appinventory.ToLowStockItems(r.LowStock),
	}, nil
}

// ExportPDF genera el reporte y lo renderiza como PDF.
func (uc *ReportUseCase) ExportPDF(ctx context.Context) ([]byte, error) {
	if uc.pdf == nil {
		return nil, fmt.Errorf("report: generador PDF no configurado")
	}
	summary, err := uc.GetSummary(ctx)
	if err != nil {
		return nil, err
	}
	return uc.pdf.GenerateReportPDF(ctx, summary)
}

// ExportXML genera el reporte y lo serializa como XML.
func (uc *ReportUseCase) ExportXML(ctx context.Context) ([]byte, error) {
	if uc.xml == nil {
		return nil, fmt.Errorf("report: exportador XML no configurado")
	}
	summary, err := uc.GetSummary(ctx)
	if err != nil {
		return nil, err
	}
	return uc.xml.ExportReportXML(ctx, summary)
}
