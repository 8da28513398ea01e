package entity

import "time"

// User representa un usuario del sistema.
// Los usuarios no se eliminan: se desactivan con Active=false.
type User struct {
	ID           int64
	Name         string
	Email        string // único, normalizado en minúsculas
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	IsAdmin      bool
	Active       bool
	CreatedAt    time.Time
}
