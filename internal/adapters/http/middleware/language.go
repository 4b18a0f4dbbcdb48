// Package middleware - Request language negotiation.
package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/manganova/api/internal/adapters/http/common"
	"github.com/manganova/api/internal/domain/apierrors"
	"github.com/manganova/api/internal/i18n"
)

// Language validates the Use-Language header before any handler runs.
//
// An absent header means English. An unsupported value is rejected with
// InvalidLanguageError rather than silently falling back, so clients learn
// about typos. The negotiated language is echoed back on the response.
func Language(translator *i18n.Translator) gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := i18n.DefaultLanguage

		if raw := c.GetHeader(common.LanguageHeader); raw != "" {
			candidate := i18n.Language(raw)
			if !candidate.IsValid() {
				common.WriteError(c, translator, apierrors.NewInvalidLanguage(apierrors.F("language", raw)))
				return
			}
			lang = candidate
		}

		common.SetLanguage(c, lang)
		c.Header(common.LanguageHeader, string(lang))

		c.Next()
	}
}
