// Package middleware - Recovery middleware for panic handling.
package middleware

import (
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/manganova/api/internal/adapters/http/common"
	"github.com/manganova/api/internal/domain/apierrors"
	"github.com/manganova/api/internal/i18n"
)

// RecoveryConfig - configuration for the recovery middleware.
type RecoveryConfig struct {
	Logger           *slog.Logger
	Translator       *i18n.Translator
	EnableStackTrace bool
}

// Recovery intercepts panics, logs the stack and answers with the standard
// InternalServerError body. The panic value itself never reaches the
// client.
func Recovery(config *RecoveryConfig) gin.HandlerFunc {
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				attrs := []slog.Attr{
					slog.String("error", fmt.Sprintf("%v", err)),
					slog.String("path", c.Request.URL.Path),
					slog.String("method", c.Request.Method),
					slog.String("request_id", GetRequestID(c)),
					slog.String("client_ip", c.ClientIP()),
				}
				if config.EnableStackTrace {
					attrs = append(attrs, slog.String("stack", string(debug.Stack())))
				}

				logger.LogAttrs(c.Request.Context(), slog.LevelError, "Panic recovered", attrs...)

				common.WriteError(c, config.Translator, apierrors.NewInternal())
			}
		}()

		c.Next()
	}
}
