package apierrors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUserNotFound_FixesVariantFields(t *testing.T) {
	err := NewUserNotFound(F("userId", 1234))

	assert.Equal(t, "UserNotFoundError", err.ClassName())
	assert.Equal(t, http.StatusNotFound, err.StatusCode())
	assert.Equal(t, "err-UserNotFoundError", err.MessageKey())

	v, ok := err.Metadata().Get("userId")
	require.True(t, ok)
	assert.Equal(t, 1234, v)
}

func TestError_ImplementsError(t *testing.T) {
	var err error = NewInvalidToken()
	assert.Contains(t, err.Error(), "InvalidTokenError")
	assert.Contains(t, err.Error(), "401")
}

func TestMetadata_MarshalPreservesOrder(t *testing.T) {
	err := NewTitleNameAlreadyExists(
		F("titleName", "Berserk"),
		F("titleId", 7),
		F("attempt", 2),
	)

	raw, marshalErr := json.Marshal(err.Metadata())
	require.NoError(t, marshalErr)
	assert.Equal(t, `{"titleName":"Berserk","titleId":7,"attempt":2}`, string(raw))
}

func TestMetadata_UnmarshalRoundTripsOrder(t *testing.T) {
	original := NewTitleNameAlreadyExists(
		F("titleName", "Berserk"),
		F("titleId", 7),
	).Metadata()

	raw, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded Metadata
	require.NoError(t, json.Unmarshal(raw, &decoded))

	require.Len(t, decoded, 2)
	assert.Equal(t, "titleName", decoded[0].Key)
	assert.Equal(t, "Berserk", decoded[0].Value)
	assert.Equal(t, "titleId", decoded[1].Key)
	assert.EqualValues(t, 7, decoded[1].Value)

	reencoded, err := json.Marshal(decoded)
	require.NoError(t, err)
	assert.Equal(t, string(raw), string(reencoded))
}

func TestMetadata_UnmarshalEmptyObject(t *testing.T) {
	var decoded Metadata
	require.NoError(t, json.Unmarshal([]byte(`{}`), &decoded))
	assert.Empty(t, decoded)

	assert.Error(t, json.Unmarshal([]byte(`[1,2]`), &decoded))
}

func TestParams_FlattensValuesInOrder(t *testing.T) {
	err := NewUsernameAlreadyExists(F("username", "miura"), F("userId", 42))
	assert.Equal(t, []string{"miura", "42"}, err.Params())
}

func TestFrom_UnwrapsChains(t *testing.T) {
	inner := NewTagNotFound(F("tagId", 3))
	wrapped := fmt.Errorf("service failed: %w", inner)

	got, ok := From(wrapped)
	require.True(t, ok)
	assert.Same(t, inner, got)

	_, ok = From(errors.New("plain"))
	assert.False(t, ok)
}

func TestIs_MatchesClassName(t *testing.T) {
	err := NewEmailOrPassword()
	assert.True(t, Is(err, "EmailOrPasswordError"))
	assert.False(t, Is(err, "UserNotFoundError"))
}

func TestVariants_AreWellFormed(t *testing.T) {
	seen := make(map[string]bool)
	for _, v := range Variants() {
		assert.False(t, seen[v.ClassName()], "duplicate variant %s", v.ClassName())
		seen[v.ClassName()] = true

		assert.True(t, strings.HasPrefix(v.MessageKey(), "err-"))
		assert.Equal(t, "err-"+v.ClassName(), v.MessageKey())
		assert.GreaterOrEqual(t, v.StatusCode(), 400)
		assert.Less(t, v.StatusCode(), 600)
	}
}

func TestNewInternal_CarriesNoMetadata(t *testing.T) {
	err := NewInternal()
	assert.Empty(t, err.Metadata())
	assert.Equal(t, http.StatusInternalServerError, err.StatusCode())
}
