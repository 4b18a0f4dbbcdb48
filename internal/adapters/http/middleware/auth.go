// Package middleware - Bearer token authentication.
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/manganova/api/internal/adapters/http/common"
	"github.com/manganova/api/internal/application/ports"
	"github.com/manganova/api/internal/domain/apierrors"
	"github.com/manganova/api/internal/i18n"
)

// PrincipalContextKey stores the authenticated caller in the Gin context.
const PrincipalContextKey = "auth_principal"

// Principal is the authenticated caller extracted from a verified token.
type Principal struct {
	UserID       int64
	Email        string
	Username     string
	StayLoggedIn bool
}

// AuthConfig - configuration for the authentication middleware.
type AuthConfig struct {
	// Tokens verifies bearer credentials.
	Tokens ports.TokenIssuer
	// Translator resolves error messages for rejections.
	Translator *i18n.Translator
	// Header carrying the credential. Defaults to Authorization.
	Header string
}

// Auth rejects requests without a valid bearer token.
//
// A missing or empty header reports MissingTokenError; a malformed header
// or a failed verification reports InvalidTokenError. On success the
// Principal is stored in the context for handlers.
func Auth(config *AuthConfig) gin.HandlerFunc {
	header := config.Header
	if header == "" {
		header = "Authorization"
	}

	return func(c *gin.Context) {
		raw := c.GetHeader(header)
		if raw == "" {
			common.WriteError(c, config.Translator, apierrors.NewMissingToken())
			return
		}

		parts := strings.SplitN(raw, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			common.WriteError(c, config.Translator, apierrors.NewInvalidToken())
			return
		}

		payload, err := config.Tokens.Verify(parts[1])
		if err != nil {
			common.WriteError(c, config.Translator, apierrors.NewInvalidToken())
			return
		}

		c.Set(PrincipalContextKey, Principal{
			UserID:       payload.UserID,
			Email:        payload.Email,
			Username:     payload.Username,
			StayLoggedIn: payload.StayLoggedIn,
		})

		c.Next()
	}
}

// GetPrincipal returns the authenticated caller, if any.
func GetPrincipal(c *gin.Context) (Principal, bool) {
	if v, exists := c.Get(PrincipalContextKey); exists {
		if p, ok := v.(Principal); ok {
			return p, true
		}
	}
	return Principal{}, false
}
