package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	tok, err := Generate("507f1f77bcf86cd799439011", "jane@example.com", "test-secret", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := Validate(tok, "test-secret")
	require.NoError(t, err)
	require.Equal(t, "507f1f77bcf86cd799439011", claims.UserID)
	require.Equal(t, "jane@example.com", claims.Email)
}

func TestValidateWrongSecret(t *testing.T) {
	tok, err := Generate("u1", "x@y.com", "secret-a", time.Hour)
	require.NoError(t, err)

	_, err = Validate(tok, "secret-b")
	require.Error(t, err)
}

func TestValidateExpired(t *testing.T) {
	tok, err := Generate("u1", "x@y.com", "secret", -time.Minute)
	require.NoError(t, err)

	_, err = Validate(tok, "secret")
	require.Error(t, err)
}

func TestValidateGarbage(t *testing.T) {
	_, err := Validate("not.a.token", "secret")
	require.Error(t, err)
}
