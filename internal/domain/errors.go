package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrProductNotFound    = errors.New("producto no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrInvalidCredentials = errors.New("email o contraseña incorrectos")
	ErrUnauthorized       = errors.New("no autenticado")
	ErrForbidden          = errors.New("acceso restringido a administradores")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente para esta salida")
)

// ValidationError describe un dato de entrada rechazado. Es ErrInvalidInput para errors.Is.
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError construye un error de validación para el campo indicado.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }
