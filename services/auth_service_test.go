package services

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestAuth(t *testing.T) *AuthService {
	t.Helper()
	return NewAuthService(newTestDB(t), "test-secret", 30*time.Minute)
}

func TestRegisterHashesPassword(t *testing.T) {
	svc := newTestAuth(t)

	user, err := svc.Register("ada", "ada@example.com", "hunter2")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("hunter2")))
	assert.Equal(t, 1, user.Level)
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	svc := newTestAuth(t)

	_, err := svc.Register("ada", "ada@example.com", "hunter2")
	require.NoError(t, err)

	_, err = svc.Register("ada", "other@example.com", "hunter2")
	assert.ErrorIs(t, err, ErrInvalidOperation)
	_, err = svc.Register("other", "ada@example.com", "hunter2")
	assert.ErrorIs(t, err, ErrInvalidOperation)
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	svc := newTestAuth(t)

	_, err := svc.Register("ada", "ada@example.com", "hunter2")
	require.NoError(t, err)

	token, err := svc.Login("ada", "hunter2")
	require.NoError(t, err)

	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	assert.True(t, parsed.Valid)
	assert.Equal(t, "ada", claims.Subject)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := newTestAuth(t)

	_, err := svc.Register("ada", "ada@example.com", "hunter2")
	require.NoError(t, err)

	_, err = svc.Login("ada", "wrong")
	assert.ErrorIs(t, err, ErrBadCredentials)
	_, err = svc.Login("nobody", "hunter2")
	assert.ErrorIs(t, err, ErrBadCredentials)
}
