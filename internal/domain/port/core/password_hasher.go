package core

// PasswordHasher abstracts the one-way hashing primitive used for user passwords
type PasswordHasher interface {
	// Hash derives a hash from a plaintext password. The result is never
	// equal to the input.
	Hash(password string) (string, error)

	// Compare checks a candidate password against a stored hash.
	//
	// Possible errors:
	// - ErrInvalidCredentials: If the candidate does not match
	Compare(hashed, candidate string) error
}
