package utils

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, secret []byte, claims jwt.MapClaims) string {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	require.NoError(t, err)

	return token
}

func TestDecodeJWT(t *testing.T) {
	secret := []byte("test-secret")
	token := signToken(t, secret, jwt.MapClaims{"id": "abc", "username": "gopher"})

	claims, err := DecodeJWT(token, secret)

	require.NoError(t, err)
	assert.Equal(t, "abc", claims["id"])
	assert.Equal(t, "gopher", claims["username"])
}

func TestDecodeJWTWrongSecret(t *testing.T) {
	token := signToken(t, []byte("right-secret"), jwt.MapClaims{"id": "abc"})

	claims, err := DecodeJWT(token, []byte("wrong-secret"))

	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestDecodeJWTMalformed(t *testing.T) {
	claims, err := DecodeJWT("not-a-token", []byte("secret"))

	assert.Error(t, err)
	assert.Nil(t, claims)
}
