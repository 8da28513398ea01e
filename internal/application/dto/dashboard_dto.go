package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReportSummaryDTO cifras del reporte de inventario.
type ReportSummaryDTO struct {
	GeneratedAt    time.Time         `json:"generated_at"`
	TotalProducts  int               `json:"total_products"`
	TotalValue     decimal.Decimal   `json:"total_value"`
	LowStockCount  int               `json:"low_stock_count"`
	OKCount        int               `json:"ok_count"`
	MovementsToday int               `json:"movements_today"`
	LowStock       []LowStockItemDTO `json:"low_stock"`
}
