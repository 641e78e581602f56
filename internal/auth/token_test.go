package auth

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/getaroom/rental-service/internal/domain"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", 15)

	token, expiresAt, err := tm.GenerateToken("tenant-1", domain.RoleTenant, "")
	require.NoError(t, err)
	require.False(t, expiresAt.IsZero())

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	require.Equal(t, "tenant-1", claims.SubjectID)
	require.Equal(t, domain.RoleTenant, claims.Role)
	require.Empty(t, claims.GrantorTenantID)
}

func TestTrusteeTokenCarriesGrantor(t *testing.T) {
	tm := NewTokenManager("test-secret", 15)

	token, _, err := tm.GenerateToken("grant-1", domain.RoleTrustee, "tenant-1")
	require.NoError(t, err)

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	require.Equal(t, "grant-1", claims.SubjectID)
	require.Equal(t, domain.RoleTrustee, claims.Role)
	require.Equal(t, "tenant-1", claims.GrantorTenantID)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	tm := NewTokenManager("test-secret", 15)
	other := NewTokenManager("different-secret", 15)

	token, _, err := tm.GenerateToken("tenant-1", domain.RoleTenant, "")
	require.NoError(t, err)

	_, err = other.ParseToken(token)
	require.Error(t, err)
}
