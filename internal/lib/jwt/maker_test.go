package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseToken(t *testing.T) {
	maker := NewJWTMaker("test-secret", time.Hour, 24*time.Hour)

	token, err := maker.GenerateToken("user@example.com", "user", "uid-1")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := maker.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.Equal(t, "user", claims.Role)
	assert.Equal(t, "uid-1", claims.UserUID)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)
}

func TestGenerateRefreshToken(t *testing.T) {
	maker := NewJWTMaker("test-secret", time.Hour, 24*time.Hour)

	token, err := maker.GenerateRefreshToken("user@example.com", "moderator", "uid-2")
	require.NoError(t, err)

	claims, err := maker.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, TokenTypeRefresh, claims.TokenType)
	assert.Equal(t, "moderator", claims.Role)
}

func TestParseTokenWrongSecret(t *testing.T) {
	maker := NewJWTMaker("test-secret", time.Hour, 24*time.Hour)
	other := NewJWTMaker("other-secret", time.Hour, 24*time.Hour)

	token, err := maker.GenerateToken("user@example.com", "user", "uid-1")
	require.NoError(t, err)

	_, err = other.ParseToken(token)
	assert.Error(t, err)
}

func TestParseTokenExpired(t *testing.T) {
	maker := NewJWTMaker("test-secret", -time.Minute, 24*time.Hour)

	token, err := maker.GenerateToken("user@example.com", "user", "uid-1")
	require.NoError(t, err)

	_, err = maker.ParseToken(token)
	assert.Error(t, err)
}

func TestParseTokenGarbage(t *testing.T) {
	maker := NewJWTMaker("test-secret", time.Hour, 24*time.Hour)

	_, err := maker.ParseToken("not-a-token")
	assert.Error(t, err)
}
