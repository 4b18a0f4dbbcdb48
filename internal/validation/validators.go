// Package validation implements the pattern-based field validators used by
// the service layer. Patterns come from configuration at runtime, so these
// complement the static binding-tag validation done by the HTTP layer.
package validation

import (
	"regexp"

	"github.com/manganova/api/internal/domain/apierrors"
)

// emailPattern mirrors the registration email policy: 4-256 chars,
// local@domain.tld shape.
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

const (
	emailMinLength = 4
	emailMaxLength = 256
)

// Email checks addr against the fixed email pattern and returns a typed
// InvalidEmailError on mismatch.
func Email(addr string) error {
	if len(addr) < emailMinLength || len(addr) > emailMaxLength {
		return apierrors.NewInvalidEmail(apierrors.F("email", addr))
	}
	if !emailPattern.MatchString(addr) {
		return apierrors.NewInvalidEmail(apierrors.F("email", addr))
	}
	return nil
}

// Regex checks subject against pattern and returns the supplied error
// variant on mismatch. An uncompilable pattern counts as a mismatch: a
// broken policy must reject rather than wave everything through.
func Regex(subject, pattern string, fail func(...apierrors.Field) *apierrors.Error) error {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return fail()
	}
	if !re.MatchString(subject) {
		return fail()
	}
	return nil
}
