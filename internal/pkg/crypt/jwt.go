package crypt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims carries the user identity embedded in an access token.
type TokenClaims struct {
	UserID       int64  `json:"userId"`
	Email        string `json:"email"`
	Username     string `json:"username"`
	StayLoggedIn bool   `json:"stayLoggedIn"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies HS256-signed access tokens.
type TokenManager struct {
	secret      string
	issuer      string
	accessTTL   time.Duration
	extendedTTL time.Duration
}

// NewTokenManager creates a token manager. extendedTTL applies when a
// session is opened with stayLoggedIn.
func NewTokenManager(secret, issuer string, accessTTL, extendedTTL time.Duration) *TokenManager {
	return &TokenManager{
		secret:      secret,
		issuer:      issuer,
		accessTTL:   accessTTL,
		extendedTTL: extendedTTL,
	}
}

// Generate signs an access token for the user. The token lives for the
// standard TTL, or the extended one when stayLoggedIn is set.
func (m *TokenManager) Generate(userID int64, email, username string, stayLoggedIn bool) (string, error) {
	ttl := m.accessTTL
	if stayLoggedIn {
		ttl = m.extendedTTL
	}

	now := time.Now().UTC()
	claims := &TokenClaims{
		UserID:       userID,
		Email:        email,
		Username:     username,
		StayLoggedIn: stayLoggedIn,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    m.issuer,
			Subject:   fmt.Sprintf("%d", userID),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(m.secret))
}

// Verify parses and validates a signed token, returning its claims.
func (m *TokenManager) Verify(token string) (*TokenClaims, error) {
	parsed, err := jwt.ParseWithClaims(token, &TokenClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(m.secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := parsed.Claims.(*TokenClaims)
	if !ok || !parsed.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	return claims, nil
}
