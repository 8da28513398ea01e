package postgres

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	return hasCode(err, pgerrcode.UniqueViolation)
}

// isCheckViolation verifica si un error viene de un CHECK (p. ej. quantity >= 0).
func isCheckViolation(err error) bool {
	return hasCode(err, pgerrcode.CheckViolation)
}

func hasCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == code
	}
	return false
}
