// Package notify contiene el aviso de stock bajo.
package notify

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/jhoicas/stock-control/internal/application/inventory"
	"github.com/jhoicas/stock-control/internal/domain/entity"
)

var _ inventory.LowStockNotifier = (*LogNotifier)(nil)

// LogNotifier registra el aviso en el log en lugar de enviarlo. No hay entrega real.
type LogNotifier struct {
	log zerolog.Logger
}

// NewLogNotifier construye el notificador con el logger de la aplicación.
func NewLogNotifier(log zerolog.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

// NotifyLowStock devuelve true si el producto está en o bajo su mínimo.
func (n *LogNotifier) NotifyLowStock(_ context.Context, p *entity.Product) bool {
	if p == nil || !p.IsLowStock() {
		return false
	}
	n.log.Warn().
		Int64("product_id", p.ID).
		Str("product", p.Name).
		Int("quantity", p.Quantity).
		Int("min_quantity", p.MinQuantity).
		Msg("stock bajo")
	return true
}
