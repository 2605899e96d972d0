package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recruitfunnel/site/models"
)

func TestIsValidInterval(t *testing.T) {
	assert.True(t, IsValidInterval("Day"))
	assert.True(t, IsValidInterval("Hour"))
	assert.False(t, IsValidInterval("day"))
	assert.False(t, IsValidInterval("Day(timestamp)); DROP TABLE x; --"))
}

func TestJWTRoundTrip(t *testing.T) {
	m, err := NewJWTManager("secret", time.Hour)
	require.NoError(t, err)

	token, err := m.GenerateJWT(&models.User{ID: 7, Email: "admin@example.com", Role: models.RoleAdmin})
	require.NoError(t, err)

	claims, err := m.ValidateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, 7, claims.UserID)
	assert.Equal(t, "admin@example.com", claims.Email)
	assert.Equal(t, models.RoleAdmin, claims.Role)
	assert.Equal(t, "7", claims.Subject)
}

func TestJWTRejectsForeignAndExpiredTokens(t *testing.T) {
	m, err := NewJWTManager("secret", time.Hour)
	require.NoError(t, err)
	other, err := NewJWTManager("other-secret", time.Hour)
	require.NoError(t, err)

	token, err := other.GenerateJWT(&models.User{ID: 1, Role: models.RoleAdmin})
	require.NoError(t, err)
	_, err = m.ValidateJWT(token)
	assert.Error(t, err)

	token, err = m.GenerateJWT(&models.User{ID: 1, Role: models.RoleAdmin})
	require.NoError(t, err)
	m.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = m.ValidateJWT(token)
	assert.Error(t, err)
}

func TestNewJWTManagerRequiresSecret(t *testing.T) {
	_, err := NewJWTManager("", time.Hour)
	assert.Error(t, err)
}

func TestGenerateSessionID(t *testing.T) {
	a := GenerateSessionID()
	b := GenerateSessionID()
	assert.NotEqual(t, a, b)
	assert.Len(t, a, 32)
	assert.NotContains(t, a, "=")
}

func TestNewLogger(t *testing.T) {
	for _, dev := range []bool{true, false} {
		logger, err := NewLogger(dev)
		require.NoError(t, err)
		assert.Equal(t, dev, logger.Core().Enabled(-1))
	}
}
