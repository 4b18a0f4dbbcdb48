// Package i18n resolves API error message keys into localized strings.
//
// The translator is a process-wide read-only resource: catalogs are loaded
// once at startup and then only read, so concurrent access from request
// handlers needs no locking. Unknown languages fall back to English and
// unknown keys fall back to the raw key; translation must never produce a
// secondary failure inside the error-handling path.
package i18n

import (
	"fmt"
	"sync"

	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/pt"
	ut "github.com/go-playground/universal-translator"
)

// Language is a supported response language.
type Language string

const (
	LanguageEnglish    Language = "en"
	LanguagePortuguese Language = "pt"
)

// DefaultLanguage is used when the request names no language or an
// unregistered one.
const DefaultLanguage = LanguageEnglish

// SupportedLanguages lists every language the API can answer in.
func SupportedLanguages() []Language {
	return []Language{LanguageEnglish, LanguagePortuguese}
}

// IsValid reports whether l is a supported language.
func (l Language) IsValid() bool {
	for _, known := range SupportedLanguages() {
		if l == known {
			return true
		}
	}
	return false
}

// Translator maps message keys to localized strings.
type Translator struct {
	uni *ut.UniversalTranslator
}

// New builds a translator with the full en/pt catalogs registered.
func New() (*Translator, error) {
	enLocale := en.New()
	uni := ut.New(enLocale, enLocale, pt.New())

	for lang, catalog := range catalogs {
		trans, found := uni.GetTranslator(string(lang))
		if !found {
			return nil, fmt.Errorf("i18n: no locale registered for %q", lang)
		}
		for key, text := range catalog {
			if err := trans.Add(key, text, false); err != nil {
				return nil, fmt.Errorf("i18n: adding %q for %q: %w", key, lang, err)
			}
		}
	}

	return &Translator{uni: uni}, nil
}

// Translate resolves key in the given language, substituting params
// positionally ({0}, {1}, ...). Degrades to English for unknown languages
// and to the raw key for unknown keys.
func (t *Translator) Translate(key string, lang Language, params ...string) string {
	if !lang.IsValid() {
		lang = DefaultLanguage
	}

	trans, found := t.uni.GetTranslator(string(lang))
	if !found {
		trans = t.uni.GetFallback()
	}

	msg, err := trans.T(key, params...)
	if err != nil {
		return key
	}
	return msg
}

// Keys returns every message key registered in the English catalog.
func (t *Translator) Keys() []string {
	keys := make([]string, 0, len(catalogs[LanguageEnglish]))
	for key := range catalogs[LanguageEnglish] {
		keys = append(keys, key)
	}
	return keys
}

// ============================================
// Shared instance
// ============================================

var (
	mu       sync.Mutex
	instance *Translator
)

// Init creates the shared translator. Calling it twice is a programming
// error and fails rather than silently rebuilding catalogs.
func Init() (*Translator, error) {
	mu.Lock()
	defer mu.Unlock()

	if instance != nil {
		return nil, fmt.Errorf("i18n: translator already initialized, use Instance()")
	}

	t, err := New()
	if err != nil {
		return nil, err
	}
	instance = t
	return instance, nil
}

// Instance returns the shared translator, creating it on first use.
func Instance() *Translator {
	mu.Lock()
	defer mu.Unlock()

	if instance == nil {
		t, err := New()
		if err != nil {
			// Catalogs are compiled in; failing to load them is a bug.
			panic(err)
		}
		instance = t
	}
	return instance
}
