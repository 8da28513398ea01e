package security

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// BcryptHasher implementa auth.PasswordHasher con bcrypt.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher construye el hasher. cost <= 0 usa bcrypt.DefaultCost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash devuelve el hash bcrypt de la contraseña.
func (h *BcryptHasher) Hash(plain string) (string, error) {
	if plain == "" {
		return "", errors.New("security: contraseña vacía")
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify compara la contraseña con el hash almacenado.
func (h *BcryptHasher) Verify(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
