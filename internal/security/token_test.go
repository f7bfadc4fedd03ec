package security_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campus-events-backend/internal/domain"
	"campus-events-backend/internal/security"
)

const testSecret = "test-secret-key-that-is-long-enough"

func TestTokenManager_RoundTrip(t *testing.T) {
	tm := security.NewTokenManager(testSecret, time.Hour)

	token, err := tm.GenerateAccessToken("user-1", "user@campus.test", domain.RoleOrganizer)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := tm.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "user@campus.test", claims.Email)
	assert.Equal(t, domain.RoleOrganizer, claims.Role)
}

func TestTokenManager_ExpiredToken(t *testing.T) {
	tm := security.NewTokenManager(testSecret, time.Millisecond)

	token, err := tm.GenerateAccessToken("user-1", "", domain.RoleStudent)
	require.NoError(t, err)

	time.Sleep(50 * time.Millisecond)
	_, err = tm.ValidateToken(token)
	assert.ErrorIs(t, err, security.ErrExpiredToken)
}

func TestTokenManager_WrongSecret(t *testing.T) {
	tm := security.NewTokenManager(testSecret, time.Hour)
	other := security.NewTokenManager("another-secret-key-also-long-enough", time.Hour)

	token, err := other.GenerateAccessToken("user-1", "", domain.RoleStudent)
	require.NoError(t, err)

	_, err = tm.ValidateToken(token)
	assert.ErrorIs(t, err, security.ErrInvalidToken)
}

func TestTokenManager_GarbageToken(t *testing.T) {
	tm := security.NewTokenManager(testSecret, time.Hour)

	_, err := tm.ValidateToken("not.a.token")
	assert.ErrorIs(t, err, security.ErrInvalidToken)
}
