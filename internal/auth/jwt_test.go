package auth

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	require.NoError(t, InitJWTSecret())

	token, err := GenerateJWT("twilcox", "Tyler Wilcox")
	require.NoError(t, err)

	parsed, err := VerifyJWT(token)
	require.NoError(t, err)

	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, "twilcox", claims["username"])
	assert.Equal(t, "Tyler Wilcox", claims["display_name"])
}

func TestInitJWTSecretRequiresEnv(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	assert.Error(t, InitJWTSecret())
}

func TestVerifyJWTRejectsGarbage(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	require.NoError(t, InitJWTSecret())

	_, err := VerifyJWT("not-a-token")
	assert.Error(t, err)
}
