package auth

import (
	"errors"
	"testing"
	"time"

	"ember/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-12345678901234567890123456789012"

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return s
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %v", err)
	assert.Equal(t, code, appErr.Code)
}

func TestVerifier_MalformedCredential(t *testing.T) {
	t.Parallel()
	v := NewVerifier(testSecret)

	for _, raw := range []string{
		"",
		"Bearer",
		"Basic dXNlcjpwYXNz",
		"Bearer a b",
		"bearer lowercase-scheme",
	} {
		_, err := v.Verify(raw)
		assertCode(t, err, models.CodeMalformedCredential)
	}
}

func TestVerifier_InvalidSignature(t *testing.T) {
	t.Parallel()
	v := NewVerifier(testSecret)

	other := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u1", "role": "member", "exp": time.Now().Add(time.Hour).Unix(),
	})
	s, err := other.SignedString([]byte("a-different-secret-entirely-123456"))
	require.NoError(t, err)

	_, err = v.Verify("Bearer " + s)
	assertCode(t, err, models.CodeInvalidCredential)
}

func TestVerifier_ExpiredToken(t *testing.T) {
	t.Parallel()
	v := NewVerifier(testSecret)

	raw := signToken(t, jwt.MapClaims{
		"sub": "u1", "role": "member", "exp": time.Now().Add(-time.Hour).Unix(),
	})
	_, err := v.Verify("Bearer " + raw)
	assertCode(t, err, models.CodeInvalidCredential)
}

func TestVerifier_MissingClaimsFailClosed(t *testing.T) {
	t.Parallel()
	v := NewVerifier(testSecret)

	t.Run("missing subject", func(t *testing.T) {
		raw := signToken(t, jwt.MapClaims{
			"role": "admin", "exp": time.Now().Add(time.Hour).Unix(),
		})
		_, err := v.Verify("Bearer " + raw)
		assertCode(t, err, models.CodeInvalidCredential)
	})

	t.Run("missing role", func(t *testing.T) {
		raw := signToken(t, jwt.MapClaims{
			"sub": "u1", "exp": time.Now().Add(time.Hour).Unix(),
		})
		_, err := v.Verify("Bearer " + raw)
		assertCode(t, err, models.CodeInvalidCredential)
	})

	t.Run("empty role is not defaulted", func(t *testing.T) {
		raw := signToken(t, jwt.MapClaims{
			"sub": "u1", "role": "", "exp": time.Now().Add(time.Hour).Unix(),
		})
		_, err := v.Verify("Bearer " + raw)
		assertCode(t, err, models.CodeInvalidCredential)
	})
}

func TestVerifier_HappyPath(t *testing.T) {
	t.Parallel()
	v := NewVerifier(testSecret)

	raw := signToken(t, jwt.MapClaims{
		"sub": "u1", "role": "admin", "exp": time.Now().Add(time.Hour).Unix(),
	})
	identity, err := v.Verify("Bearer " + raw)
	require.NoError(t, err)
	assert.Equal(t, "u1", identity.SubjectID)
	assert.Equal(t, RoleAdmin, identity.Role)
	assert.True(t, identity.IsAdmin())

	raw = signToken(t, jwt.MapClaims{
		"sub": "u2", "role": "member", "exp": time.Now().Add(time.Hour).Unix(),
	})
	identity, err = v.Verify("Bearer " + raw)
	require.NoError(t, err)
	assert.Equal(t, "u2", identity.SubjectID)
	assert.False(t, identity.IsAdmin())
}
