package core

// TokenManager abstracts issuing and verifying auth tokens
type TokenManager interface {
	// Generate issues a signed token carrying the user identity
	Generate(userID string) (string, error)

	// Parse verifies a token and returns the user identity it carries.
	//
	// Possible errors:
	// - ErrTokenExpired: If the token is past its expiry
	// - ErrInvalidToken: If the token is malformed or the signature is wrong
	Parse(token string) (string, error)
}
