package auth

import (
	"testing"
	"time"

	"github.com/hilthontt/powersite/internal/infrastructure/configs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuthenticator(t *testing.T, now *time.Time) *Authenticator {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	return New(configs.AuthConfig{
		SecretKey: "test-secret",
		TokenTTL:  time.Hour,
		Issuer:    "powersite",
		Staff:     []configs.StaffAccount{{Username: "editor", PasswordHash: string(hash)}},
	}).WithClock(func() time.Time { return *now })
}

func TestLoginAndVerify(t *testing.T) {
	now := time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)
	a := newAuthenticator(t, &now)

	token, err := a.Login("editor", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "Bearer", token.TokenType)
	assert.Equal(t, now.Add(time.Hour), token.ExpiresAt)

	caller, err := a.Verify(token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "editor", caller.Subject)
	assert.True(t, caller.Privileged)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	now := time.Now()
	a := newAuthenticator(t, &now)

	_, err := a.Login("editor", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = a.Login("nobody", "s3cret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestVerifyRejectsExpiredAndForeignTokens(t *testing.T) {
	now := time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)
	a := newAuthenticator(t, &now)

	token, err := a.Issue("editor")
	require.NoError(t, err)

	now = now.Add(2 * time.Hour)
	_, err = a.Verify(token.AccessToken)
	assert.ErrorIs(t, err, ErrExpiredToken)

	other := New(configs.AuthConfig{SecretKey: "other-secret", TokenTTL: time.Hour, Issuer: "powersite"}).
		WithClock(func() time.Time { return now })
	foreign, err := other.Issue("editor")
	require.NoError(t, err)

	_, err = a.Verify(foreign.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = a.Verify("")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = a.Verify("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestBearerToken(t *testing.T) {
	token, ok := BearerToken("Bearer abc.def")
	assert.True(t, ok)
	assert.Equal(t, "abc.def", token)

	token, ok = BearerToken("bearer   xyz ")
	assert.True(t, ok)
	assert.Equal(t, "xyz", token)

	_, ok = BearerToken("Basic dXNlcjpwYXNz")
	assert.False(t, ok)

	_, ok = BearerToken("Bearer")
	assert.False(t, ok)
}

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("hunter2")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("hunter2")))

	_, err = HashPassword("")
	assert.Error(t, err)
}
