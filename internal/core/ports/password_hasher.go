package ports

// PasswordHasher abstracts the one-way password hashing scheme so the auth
// service stays independent of the underlying algorithm.
type PasswordHasher interface {
	// Hash generates a salted digest from a plaintext password.
	Hash(password string) (string, error)
	// Check reports whether the plaintext matches the digest. It fails
	// closed: a malformed digest is a mismatch, never an error.
	Check(password, digest string) bool
}
