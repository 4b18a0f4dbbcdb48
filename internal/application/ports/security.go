package ports

// PasswordHasher hashes and verifies credentials.
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Verify reports whether password matches the encoded hash. A
	// malformed hash verifies as false rather than erroring.
	Verify(encodedHash, password string) (bool, error)
}

// TokenIssuer mints and validates signed access tokens.
type TokenIssuer interface {
	Generate(userID int64, email, username string, stayLoggedIn bool) (string, error)
	Verify(token string) (*TokenPayload, error)
}

// TokenPayload is the identity decoded from a valid access token.
type TokenPayload struct {
	UserID       int64
	Email        string
	Username     string
	StayLoggedIn bool
}
