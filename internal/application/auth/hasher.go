package auth

// PasswordHasher abstrae el algoritmo de hash de contraseñas (bcrypt en producción).
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(hash, plain string) bool
}
