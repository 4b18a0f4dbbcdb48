// Package apierrors defines the typed API error model.
//
// Every failure the API can report is one of a closed set of variants. A variant
// fixes the class name, the HTTP status code and the translation message key;
// callers attach structured metadata at the point of failure. Errors propagate
// unmodified through every layer and are consumed exactly once by the central
// HTTP error handler, which serializes them as
// {className, statusCode, message, metadata}.
//
// Pattern: Closed Sum Type
// - One constructor per variant (no open class hierarchy)
// - The handler matches on the variant, not on error strings
package apierrors

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
)

// ============================================
// Metadata
// ============================================

// Field is a single metadata entry. Metadata keeps insertion order, so the
// serialized error body is byte-stable for a given construction site.
type Field struct {
	Key   string
	Value any
}

// F is a shorthand constructor for a metadata field.
func F(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// Metadata is an ordered set of named values attached to an error.
type Metadata []Field

// Get returns the value for key, or false if absent.
func (m Metadata) Get(key string) (any, bool) {
	for _, f := range m {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// MarshalJSON serializes metadata as a JSON object preserving field order.
func (m Metadata) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range m {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object back into ordered metadata, keeping
// the fields in document order so a serialized error body round-trips.
// Numbers decode as float64, per encoding/json.
func (m *Metadata) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*m = nil
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok != json.Delim('{') {
		return fmt.Errorf("metadata: expected JSON object, got %v", tok)
	}

	fields := Metadata{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("metadata: non-string object key %v", keyTok)
		}

		var value any
		if err := dec.Decode(&value); err != nil {
			return err
		}
		fields = append(fields, Field{Key: key, Value: value})
	}

	if _, err := dec.Token(); err != nil {
		return err
	}

	*m = fields
	return nil
}

// ============================================
// Error
// ============================================

// Error is a typed API error. Immutable once constructed.
type Error struct {
	className  string
	statusCode int
	messageKey string
	metadata   Metadata
}

func newError(className string, statusCode int, meta []Field) *Error {
	return &Error{
		className:  className,
		statusCode: statusCode,
		messageKey: "err-" + className,
		metadata:   Metadata(meta),
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s [%d]: %s", e.className, e.statusCode, e.messageKey)
}

// ClassName returns the variant tag (e.g. "UserNotFoundError").
func (e *Error) ClassName() string { return e.className }

// StatusCode returns the HTTP status fixed by the variant.
func (e *Error) StatusCode() int { return e.statusCode }

// MessageKey returns the translation key, always "err-<ClassName>".
func (e *Error) MessageKey() string { return e.messageKey }

// Metadata returns the ordered metadata attached at construction.
func (e *Error) Metadata() Metadata { return e.metadata }

// Params flattens metadata values to strings, in order. The translator uses
// them as positional template substitutions.
func (e *Error) Params() []string {
	params := make([]string, 0, len(e.metadata))
	for _, f := range e.metadata {
		params = append(params, fmt.Sprintf("%v", f.Value))
	}
	return params
}

// ============================================
// Variant constructors
// ============================================

// BadRequest (400)

func NewInvalidEmail(meta ...Field) *Error {
	return newError("InvalidEmailError", http.StatusBadRequest, meta)
}

func NewInvalidUsername(meta ...Field) *Error {
	return newError("InvalidUsernameError", http.StatusBadRequest, meta)
}

func NewInvalidPassword(meta ...Field) *Error {
	return newError("InvalidPasswordError", http.StatusBadRequest, meta)
}

// NewPasswordsDoNotMatch reports that the new password equals the current one.
// The historical name is kept for client compatibility.
func NewPasswordsDoNotMatch(meta ...Field) *Error {
	return newError("PasswordsDoNotMatchError", http.StatusBadRequest, meta)
}

func NewMissingParams(meta ...Field) *Error {
	return newError("MissingParamsError", http.StatusBadRequest, meta)
}

func NewInvalidMimeType(meta ...Field) *Error {
	return newError("InvalidMimeTypeError", http.StatusBadRequest, meta)
}

func NewInvalidLanguage(meta ...Field) *Error {
	return newError("InvalidLanguageError", http.StatusBadRequest, meta)
}

// NewRequestValidation reports a request schema violation detected at the
// binding layer, before any service code runs.
func NewRequestValidation(meta ...Field) *Error {
	return newError("RequestValidationError", http.StatusUnprocessableEntity, meta)
}

// Unauthorized (401)

func NewMissingToken(meta ...Field) *Error {
	return newError("MissingTokenError", http.StatusUnauthorized, meta)
}

func NewInvalidToken(meta ...Field) *Error {
	return newError("InvalidTokenError", http.StatusUnauthorized, meta)
}

// NewEmailOrPassword is raised both for an unknown email and for a wrong
// password, so account existence is never distinguishable from the response.
func NewEmailOrPassword(meta ...Field) *Error {
	return newError("EmailOrPasswordError", http.StatusUnauthorized, meta)
}

// NotFound (404)

func NewUserNotFound(meta ...Field) *Error {
	return newError("UserNotFoundError", http.StatusNotFound, meta)
}

func NewTitleNotFound(meta ...Field) *Error {
	return newError("TitleNotFoundError", http.StatusNotFound, meta)
}

func NewTagNotFound(meta ...Field) *Error {
	return newError("TagNotFoundError", http.StatusNotFound, meta)
}

func NewGroupNotFound(meta ...Field) *Error {
	return newError("GroupNotFoundError", http.StatusNotFound, meta)
}

func NewRatingNotFound(meta ...Field) *Error {
	return newError("RatingNotFoundError", http.StatusNotFound, meta)
}

// Conflict (409)

func NewUsernameAlreadyExists(meta ...Field) *Error {
	return newError("UsernameAlreadyExistsError", http.StatusConflict, meta)
}

func NewTitleNameAlreadyExists(meta ...Field) *Error {
	return newError("TitleNameAlreadyExistsError", http.StatusConflict, meta)
}

func NewPasswordAlreadyUsed(meta ...Field) *Error {
	return newError("PasswordAlreadyUsedError", http.StatusConflict, meta)
}

func NewGroupNameAlreadyExists(meta ...Field) *Error {
	return newError("GroupNameAlreadyExistsError", http.StatusConflict, meta)
}

// Internal (500)

// NewInternal is the fallback for unexpected failures. It never carries
// metadata so nothing internal leaks to clients.
func NewInternal() *Error {
	return newError("InternalServerError", http.StatusInternalServerError, nil)
}

// ============================================
// Helpers
// ============================================

// From extracts a typed *Error from an error chain.
func From(err error) (*Error, bool) {
	for e := err; e != nil; e = unwrap(e) {
		if apiErr, ok := e.(*Error); ok {
			return apiErr, true
		}
	}
	return nil, false
}

// Is reports whether err is a typed error of the given class.
func Is(err error, className string) bool {
	apiErr, ok := From(err)
	return ok && apiErr.className == className
}

func unwrap(err error) error {
	u, ok := err.(interface{ Unwrap() error })
	if !ok {
		return nil
	}
	return u.Unwrap()
}

// Variants returns one zero-metadata example of every variant. Used by the
// route documentation generator and by the catalog completeness tests.
func Variants() []*Error {
	return []*Error{
		NewInvalidEmail(),
		NewInvalidUsername(),
		NewInvalidPassword(),
		NewPasswordsDoNotMatch(),
		NewMissingParams(),
		NewInvalidMimeType(),
		NewInvalidLanguage(),
		NewRequestValidation(),
		NewMissingToken(),
		NewInvalidToken(),
		NewEmailOrPassword(),
		NewUserNotFound(),
		NewTitleNotFound(),
		NewTagNotFound(),
		NewGroupNotFound(),
		NewRatingNotFound(),
		NewUsernameAlreadyExists(),
		NewTitleNameAlreadyExists(),
		NewPasswordAlreadyUsed(),
		NewGroupNameAlreadyExists(),
		NewInternal(),
	}
}
