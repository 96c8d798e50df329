package validator

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsValidEmail(t *testing.T) {
	require.True(t, IsValidEmail("someone@example.com"))
	require.True(t, IsValidEmail("a.b+c@uni.edu"))
	require.False(t, IsValidEmail(""))
	require.False(t, IsValidEmail("not-an-email"))
	require.False(t, IsValidEmail("missing@tld"))
}

func TestIsValidPhone(t *testing.T) {
	require.True(t, IsValidPhone("+15551234567"))
	require.True(t, IsValidPhone("555-123-4567"))
	require.False(t, IsValidPhone(""))
	require.False(t, IsValidPhone("abc"))
}

func TestIsValidUsername(t *testing.T) {
	require.True(t, IsValidUsername("jane_doe"))
	require.True(t, IsValidUsername("abc"))
	require.False(t, IsValidUsername("ab"))
	require.False(t, IsValidUsername("has spaces"))
	require.False(t, IsValidUsername(""))
}

func TestIsValidDate(t *testing.T) {
	require.True(t, IsValidDate("2024-05-01"))
	require.True(t, IsValidDate("2024-05-01T13:45:00Z"))
	require.False(t, IsValidDate("05/01/2024"))
	require.False(t, IsValidDate("yesterday"))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-05-01")
	require.NoError(t, err)
	require.Equal(t, 2024, d.Year())

	_, err = ParseDate("garbage")
	require.Error(t, err)
}
