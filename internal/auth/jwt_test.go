package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solhub/admin-api/internal/model"
)

func testProfile(admin bool) *model.Profile {
	return &model.Profile{
		ID:               uuid.New(),
		Email:            "admin@solhub.io",
		Role:             "owner",
		IsDashboardAdmin: admin,
	}
}

func TestJWTService_PairRoundTrip(t *testing.T) {
	svc := NewJWTService([]byte("test-secret"), 15*time.Minute, 24*time.Hour)
	profile := testProfile(true)

	pair, err := svc.GeneratePair(profile)
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, int64(900), pair.ExpiresIn)

	claims, err := svc.Verify(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, profile.ID.String(), claims.UserID)
	assert.Equal(t, profile.Email, claims.Email)
	assert.True(t, claims.DashboardAdmin)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)

	claims, err = svc.Verify(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, TokenTypeRefresh, claims.TokenType)
}

func TestJWTService_RejectsWrongSecret(t *testing.T) {
	svc := NewJWTService([]byte("test-secret"), time.Minute, time.Hour)
	other := NewJWTService([]byte("another-secret"), time.Minute, time.Hour)

	pair, err := svc.GeneratePair(testProfile(true))
	require.NoError(t, err)

	_, err = other.Verify(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_RejectsExpired(t *testing.T) {
	svc := NewJWTService([]byte("test-secret"), -time.Minute, time.Hour)

	pair, err := svc.GeneratePair(testProfile(true))
	require.NoError(t, err)

	_, err = svc.Verify(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_RejectsGarbage(t *testing.T) {
	svc := NewJWTService([]byte("test-secret"), time.Minute, time.Hour)
	_, err := svc.Verify("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
