package dto

import (
	"time"

	"github.com/jhoicas/stock-control/internal/domain/entity"
)

// RegisterMovementRequest body para POST /api/products/:id/inbound y /outbound.
type RegisterMovementRequest struct {
	Quantity int    `json:"quantity" form:"quantity"`
	Notes    string `json:"notes" form:"notes"`
}

// MovementResponse salida de un movimiento.
type MovementResponse struct {
	ID          int64     `json:"id"`
	ProductID   int64     `json:"product_id"`
	ProductName string    `json:"product_name,omitempty"`
	UserID      int64     `json:"user_id"`
	UserName    string    `json:"user_name,omitempty"`
	Type        string    `json:"type"`
	Quantity    int       `json:"quantity"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// MovementResultResponse resultado de registrar un movimiento.
// LowStockAlert indica si el aviso de stock bajo se disparó tras el movimiento.
type MovementResultResponse struct {
	Product       ProductResponse  `json:"product"`
	Movement      MovementResponse `json:"movement"`
	LowStockAlert bool             `json:"low_stock_alert"`
}

// MovementQuery filtros de GET /api/inventory/movements.
type MovementQuery struct {
	Limit     int    `query:"limit"`
	ProductID int64  `query:"product_id"`
	Type      string `query:"type"`
}

// MovementListResponse historial de movimientos.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Total int                `json:"total"`
}

// LowStockItemDTO producto en o por debajo de su mínimo.
type LowStockItemDTO struct {
	ProductID   int64  `json:"product_id"`
	Name        string `json:"name"`
	Quantity    int    `json:"quantity"`
	MinQuantity int    `json:"min_quantity"`
	Shortfall   int    `json:"shortfall"` // MinQuantity - Quantity
	Priority    int    `json:"priority"`  // 1 = más urgente
}

// ToMovementResponse mapea un movimiento simple.
func ToMovementResponse(m *entity.Movement) *MovementResponse {
	if m == nil {
		return nil
	}
	return &MovementResponse{
		ID:        m.ID,
		ProductID: m.ProductID,
		UserID:    m.UserID,
		Type:      string(m.Type),
		Quantity:  m.Quantity,
		Notes:     m.Notes,
		CreatedAt: m.CreatedAt,
	}
}

// ToMovementDetailResponse mapea un movimiento con nombres de producto y usuario.
func ToMovementDetailResponse(m *entity.MovementDetail) *MovementResponse {
	if m == nil {
		return nil
	}
	out := ToMovementResponse(&m.Movement)
	out.ProductName = m.ProductName
	out.UserName = m.UserName
	return out
}
