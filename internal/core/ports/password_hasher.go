package ports

// PasswordHasher is the one-way salted hash primitive used for credentials.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	// Verify reports whether plain hashes to digest. A mismatch is false,
	// never an error.
	Verify(plain, digest string) bool
}
