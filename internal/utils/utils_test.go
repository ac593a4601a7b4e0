package utils

import (
	"regexp"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("Secret123")
	require.NoError(t, err)
	assert.NotEqual(t, "Secret123", hash)
	assert.True(t, CheckPasswordHash("Secret123", hash))
	assert.False(t, CheckPasswordHash("secret123", hash))
}

func TestIsStrongPassword(t *testing.T) {
	assert.True(t, IsStrongPassword("Passw0rd"))
	assert.False(t, IsStrongPassword("Pass0rd"), "too short")
	assert.False(t, IsStrongPassword("password1"), "no upper")
	assert.False(t, IsStrongPassword("PASSWORD1"), "no lower")
	assert.False(t, IsStrongPassword("Passwords"), "no digit")
}

func TestGenerateSecureRandomString_VerificationCode(t *testing.T) {
	code, err := GenerateSecureRandomString(VerificationCodeBytes)
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^[0-9a-f]{6}$`), code)

	_, err = GenerateSecureRandomString(0)
	assert.Error(t, err)
}

func TestGenerateURLSafeToken(t *testing.T) {
	a, err := GenerateURLSafeToken(32)
	require.NoError(t, err)
	b, err := GenerateURLSafeToken(32)
	require.NoError(t, err)

	assert.Len(t, a, 43)
	assert.Regexp(t, regexp.MustCompile(`^[A-Za-z0-9_-]+$`), a)
	assert.NotEqual(t, a, b)
}

func TestHashResetToken(t *testing.T) {
	h := HashResetToken("abc")
	assert.Len(t, h, 64)
	assert.Equal(t, h, HashResetToken("abc"))
	assert.NotEqual(t, h, HashResetToken("abd"))
}

func TestJWTRoundTrip(t *testing.T) {
	now := time.Now()
	token, err := GenerateJWT("user-1", "donor", "secret", now, time.Hour, "msaada-backend")
	require.NoError(t, err)

	claims, err := ParseAndValidateJWT(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "donor", claims.UserType)
	assert.Equal(t, "msaada-backend", claims.Issuer)

	_, err = ParseAndValidateJWT(token, "other-secret")
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)

	expired, err := GenerateJWT("user-1", "donor", "secret", now.Add(-2*time.Hour), time.Hour, "msaada-backend")
	require.NoError(t, err)
	_, err = ParseAndValidateJWT(expired, "secret")
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestNormalizeMSISDN(t *testing.T) {
	valid := map[string]string{
		"0712345678":      "254712345678",
		"+254712345678":   "254712345678",
		"254712345678":    "254712345678",
		"712345678":       "254712345678",
		"0110 123 456":    "254110123456",
		"+254-722-000111": "254722000111",
	}
	for in, want := range valid {
		got, err := NormalizeMSISDN(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, in := range []string{"", "12345", "0812345678", "25471234567", "+1 555 0100"} {
		_, err := NormalizeMSISDN(in)
		assert.ErrorIs(t, err, ErrInvalidMSISDN, in)
	}
}
