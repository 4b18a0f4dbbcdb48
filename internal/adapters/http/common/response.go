// Package common holds the shared HTTP-layer types: the fixed error body,
// the declarative route descriptor and the request language plumbing.
//
// Split out so handlers, middleware and the router can share them without
// import cycles.
package common

import (
	"github.com/gin-gonic/gin"

	"github.com/manganova/api/internal/domain/apierrors"
	"github.com/manganova/api/internal/i18n"
)

// ============================================
// Request language
// ============================================

const (
	// LanguageHeader carries the client's preferred response language.
	LanguageHeader = "Use-Language"
	// LanguageContextKey stores the validated language in the Gin context.
	LanguageContextKey = "use_language"
)

// SetLanguage stores the validated request language in the context.
func SetLanguage(c *gin.Context, lang i18n.Language) {
	c.Set(LanguageContextKey, lang)
}

// GetLanguage returns the request language, defaulting to English.
func GetLanguage(c *gin.Context) i18n.Language {
	if v, exists := c.Get(LanguageContextKey); exists {
		if lang, ok := v.(i18n.Language); ok {
			return lang
		}
	}
	return i18n.DefaultLanguage
}

// ============================================
// Error body
// ============================================

// ErrorBody is the one JSON shape every API failure serializes to.
type ErrorBody struct {
	ClassName  string             `json:"className"`
	StatusCode int                `json:"statusCode"`
	Message    string             `json:"message"`
	Metadata   apierrors.Metadata `json:"metadata"`
}

// NewErrorBody resolves the error's message in the given language and
// builds the wire body. Nil metadata serializes as an empty object.
func NewErrorBody(t *i18n.Translator, lang i18n.Language, apiErr *apierrors.Error) ErrorBody {
	return ErrorBody{
		ClassName:  apiErr.ClassName(),
		StatusCode: apiErr.StatusCode(),
		Message:    t.Translate(apiErr.MessageKey(), lang, apiErr.Params()...),
		Metadata:   apiErr.Metadata(),
	}
}

// WriteError is the single sink for API failures. Typed errors keep their
// variant; anything else degrades to InternalServerError so internals never
// reach the client.
func WriteError(c *gin.Context, t *i18n.Translator, err error) {
	apiErr, ok := apierrors.From(err)
	if !ok {
		apiErr = apierrors.NewInternal()
	}

	c.AbortWithStatusJSON(apiErr.StatusCode(), NewErrorBody(t, GetLanguage(c), apiErr))
}

// ============================================
// Declarative routes
// ============================================

// Route describes one endpoint: where it lives, whether it needs a logged-
// in caller, its success status and the failure variants it can report.
// Handlers expose route tables and the router registers them, so the
// documented error catalog is generated from the same declarations the
// server actually runs.
type Route struct {
	Method        string
	Path          string
	RequiresLogin bool
	Status        int
	Errors        []*apierrors.Error
	Handler       gin.HandlerFunc
}
