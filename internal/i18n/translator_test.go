package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manganova/api/internal/domain/apierrors"
)

func TestNew_LoadsCatalogs(t *testing.T) {
	tr, err := New()
	require.NoError(t, err)
	require.NotNil(t, tr)
}

// Every error variant must translate to a non-empty string in every
// supported language without failing.
func TestTranslate_CoversAllVariantsInAllLanguages(t *testing.T) {
	tr, err := New()
	require.NoError(t, err)

	for _, lang := range SupportedLanguages() {
		for _, variant := range apierrors.Variants() {
			msg := tr.Translate(variant.MessageKey(), lang, variant.Params()...)
			assert.NotEmpty(t, msg, "no %s message for %s", lang, variant.ClassName())
			assert.NotEqual(t, variant.MessageKey(), msg,
				"missing catalog entry for %s in %s", variant.MessageKey(), lang)
		}
	}
}

func TestTranslate_LocalizesPerLanguage(t *testing.T) {
	tr, err := New()
	require.NoError(t, err)

	enMsg := tr.Translate("err-UserNotFoundError", LanguageEnglish)
	ptMsg := tr.Translate("err-UserNotFoundError", LanguagePortuguese)

	assert.Equal(t, "User not found.", enMsg)
	assert.Equal(t, "Usuário não encontrado.", ptMsg)
}

func TestTranslate_UnknownLanguageFallsBackToEnglish(t *testing.T) {
	tr, err := New()
	require.NoError(t, err)

	msg := tr.Translate("err-TagNotFoundError", Language("xx"))
	assert.Equal(t, "Tag not found.", msg)
}

func TestTranslate_UnknownKeyDegradesToKey(t *testing.T) {
	tr, err := New()
	require.NoError(t, err)

	msg := tr.Translate("err-DoesNotExist", LanguageEnglish)
	assert.Equal(t, "err-DoesNotExist", msg)
}

func TestCatalogs_HaveIdenticalKeySets(t *testing.T) {
	enCatalog := catalogs[LanguageEnglish]
	for _, lang := range SupportedLanguages() {
		assert.Len(t, catalogs[lang], len(enCatalog), "catalog size mismatch for %s", lang)
		for key := range enCatalog {
			_, ok := catalogs[lang][key]
			assert.True(t, ok, "catalog %s is missing %s", lang, key)
		}
	}
}

func TestLanguage_IsValid(t *testing.T) {
	assert.True(t, LanguageEnglish.IsValid())
	assert.True(t, LanguagePortuguese.IsValid())
	assert.False(t, Language("xx").IsValid())
	assert.False(t, Language("").IsValid())
}
