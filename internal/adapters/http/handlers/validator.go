// Package handlers contains the HTTP handlers. A handler binds the
// request, calls a service and writes the DTO; failures go through the
// central error sink unmodified. Each handler exposes a declarative route
// table consumed by the router.
package handlers

import (
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/manganova/api/internal/adapters/http/common"
	"github.com/manganova/api/internal/domain/apierrors"
	"github.com/manganova/api/internal/domain/entities"
	"github.com/manganova/api/internal/i18n"
)

// ============================================
// Custom Validator Setup
// ============================================

var setupOnce sync.Once

// SetupValidator installs the custom binding validators. Safe to call more
// than once.
func SetupValidator() {
	setupOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			// Report field names from the json tag, not the Go name.
			v.RegisterTagNameFunc(func(fld reflect.StructField) string {
				name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
				if name == "-" {
					return ""
				}
				return name
			})

			_ = v.RegisterValidation("contenttype", validateContentType)
			_ = v.RegisterValidation("taggroup", validateTagGroup)
		}
	})
}

func validateContentType(fl validator.FieldLevel) bool {
	return entities.ContentType(fl.Field().String()).IsValid()
}

func validateTagGroup(fl validator.FieldLevel) bool {
	return entities.TagGroup(fl.Field().String()).IsValid()
}

// ============================================
// Binding Error Handling
// ============================================

// BindingError converts a Gin binding failure into the typed 422 variant.
// Field violations become metadata entries keyed by json field name, so
// the client sees which field broke which rule.
func BindingError(err error) *apierrors.Error {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return apierrors.NewRequestValidation(apierrors.F("body", "malformed request body"))
	}

	fields := make([]apierrors.Field, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		fields = append(fields, apierrors.F(fieldErr.Field(), bindingMessage(fieldErr)))
	}
	return apierrors.NewRequestValidation(fields...)
}

func bindingMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "min":
		return "value is too small (minimum: " + fe.Param() + ")"
	case "max":
		return "value is too large (maximum: " + fe.Param() + ")"
	case "contenttype":
		return "invalid content type"
	case "taggroup":
		return "invalid tag group"
	default:
		return "invalid value"
	}
}

// ============================================
// Request Parsing Helpers
// ============================================

// BindJSON binds the JSON body. On failure the 422 response is already
// written and false is returned.
func BindJSON[T any](c *gin.Context, t *i18n.Translator, req *T) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		common.WriteError(c, t, BindingError(err))
		return false
	}
	return true
}

// BindQuery binds query string parameters.
func BindQuery[T any](c *gin.Context, t *i18n.Translator, req *T) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		common.WriteError(c, t, BindingError(err))
		return false
	}
	return true
}

// PathID parses a numeric path parameter. On failure the 422 response is
// already written and false is returned.
func PathID(c *gin.Context, t *i18n.Translator, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		common.WriteError(c, t, apierrors.NewRequestValidation(apierrors.F(name, "must be an integer")))
		return 0, false
	}
	return id, true
}
