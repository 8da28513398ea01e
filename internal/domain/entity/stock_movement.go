package entity

import "time"

// MovementType tipo de movimiento de inventario.
type MovementType string

// Tipos de movimiento válidos.
const (
	MovementTypeIn  MovementType = "entrada"
	MovementTypeOut MovementType = "saida"
)

// Valid indica si el tipo es uno de los dos valores admitidos.
func (t MovementType) Valid() bool {
	return t == MovementTypeIn || t == MovementTypeOut
}

// Movement registro de auditoría de un cambio de stock. Solo se inserta; nunca se actualiza ni elimina.
type Movement struct {
	ID        int64
	ProductID int64
	UserID    int64
	Type      MovementType
	Quantity  int // siempre positivo; el signo lo da Type
	Notes     string
	CreatedAt time.Time
}

// MovementDetail movimiento con los nombres de producto y usuario para listados.
type MovementDetail struct {
	Movement
	ProductName string
	UserName    string
}
