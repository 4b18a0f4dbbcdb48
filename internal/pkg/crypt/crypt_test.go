package crypt

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_ProducesEncodedHash(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(hash, "$argon2id$"))
	assert.Len(t, strings.Split(hash, "$"), 6)
}

func TestHashPassword_SaltedPerCall(t *testing.T) {
	first, err := HashPassword("same password")
	require.NoError(t, err)
	second, err := HashPassword("same password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestHashPassword_RejectsEmpty(t *testing.T) {
	_, err := HashPassword("")
	assert.Error(t, err)
}

func TestHashPassword_RejectsOversized(t *testing.T) {
	_, err := HashPassword(strings.Repeat("a", maxPasswordLength+1))
	assert.Error(t, err)
}

func TestVerifyPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("Sup3rSecret!")
	require.NoError(t, err)

	ok, err := VerifyPassword(hash, "Sup3rSecret!")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword(hash, "Sup3rSecret?")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyPassword_MalformedHashIsFalseNotError(t *testing.T) {
	for _, hash := range []string{
		"",
		"not-a-hash",
		"$bcrypt$v=19$m=65536,t=3,p=4$c2FsdA$aGFzaA",
		"$argon2id$v=19$broken",
	} {
		ok, err := VerifyPassword(hash, "whatever")
		assert.NoError(t, err, hash)
		assert.False(t, ok, hash)
	}
}

func newTestTokenManager() *TokenManager {
	return NewTokenManager("test-secret", "manganova", time.Hour, 720*time.Hour)
}

func TestTokenManager_GenerateAndVerify(t *testing.T) {
	mgr := newTestTokenManager()

	token, err := mgr.Generate(42, "reader@example.com", "reader", false)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := mgr.Verify(token)
	require.NoError(t, err)

	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "reader@example.com", claims.Email)
	assert.Equal(t, "reader", claims.Username)
	assert.False(t, claims.StayLoggedIn)
	assert.Equal(t, "manganova", claims.Issuer)
	assert.Equal(t, "42", claims.Subject)
}

func TestTokenManager_StayLoggedInExtendsExpiry(t *testing.T) {
	mgr := newTestTokenManager()

	short, err := mgr.Generate(1, "a@b.com", "a", false)
	require.NoError(t, err)
	long, err := mgr.Generate(1, "a@b.com", "a", true)
	require.NoError(t, err)

	shortClaims, err := mgr.Verify(short)
	require.NoError(t, err)
	longClaims, err := mgr.Verify(long)
	require.NoError(t, err)

	assert.True(t, longClaims.ExpiresAt.After(shortClaims.ExpiresAt.Time))
	assert.True(t, longClaims.StayLoggedIn)
}

func TestTokenManager_RejectsWrongSecret(t *testing.T) {
	token, err := newTestTokenManager().Generate(7, "x@y.com", "x", false)
	require.NoError(t, err)

	other := NewTokenManager("different-secret", "manganova", time.Hour, 720*time.Hour)
	_, err = other.Verify(token)
	assert.Error(t, err)
}

func TestTokenManager_RejectsExpired(t *testing.T) {
	mgr := NewTokenManager("test-secret", "manganova", -time.Minute, 720*time.Hour)

	token, err := mgr.Generate(7, "x@y.com", "x", false)
	require.NoError(t, err)

	_, err = mgr.Verify(token)
	assert.Error(t, err)
}

func TestTokenManager_RejectsGarbage(t *testing.T) {
	_, err := newTestTokenManager().Verify("not.a.token")
	assert.Error(t, err)
}
