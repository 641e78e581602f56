package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/getaroom/rental-service/internal/config"
	"github.com/getaroom/rental-service/internal/domain"
)

func newAuthFixture(t *testing.T) (*AuthService, *fakeTenantRepo, *fakeLandlordRepo, *fakeProviderRepo) {
	t.Helper()
	tenants := newFakeTenantRepo()
	landlords := newFakeLandlordRepo()
	providers := newFakeProviderRepo()

	cfg := config.Config{
		Auth: config.AuthConfig{
			JWTSecret:             "test-secret",
			AccessTokenTTLMinutes: 15,
			BcryptCost:            4,
		},
	}
	svc := NewAuthService(cfg, AuthDependencies{
		TenantRepo:   tenants,
		LandlordRepo: landlords,
		ProviderRepo: providers,
	})
	return svc, tenants, landlords, providers
}

func TestRegistration(t *testing.T) {
	ctx := context.Background()

	t.Run("tenant registration issues a session", func(t *testing.T) {
		svc, tenants, _, _ := newAuthFixture(t)

		session, err := svc.RegisterTenant(ctx, "Thea", "Thea@Example.com", "secret123", domain.TenantKindStudent)
		require.NoError(t, err)
		require.NotEmpty(t, session.Token)
		require.Equal(t, domain.RoleTenant, session.Principal.Role)

		stored, err := tenants.GetByEmail(ctx, "thea@example.com")
		require.NoError(t, err)
		require.Equal(t, domain.TenantKindStudent, stored.Kind)
		require.NotEqual(t, "secret123", stored.PasswordHash)
	})

	t.Run("email collision across role tables", func(t *testing.T) {
		svc, _, _, _ := newAuthFixture(t)

		_, err := svc.RegisterTenant(ctx, "Thea", "shared@example.com", "secret123", domain.TenantKindGeneral)
		require.NoError(t, err)
		_, err = svc.RegisterLandlord(ctx, "Lars", "shared@example.com", "secret123", nil)
		require.Error(t, err)
	})

	t.Run("provider requires at least one service", func(t *testing.T) {
		svc, _, _, _ := newAuthFixture(t)

		_, err := svc.RegisterServiceProvider(ctx, "Pipes & Co", "pipes@example.com", "secret123", nil)
		require.Error(t, err)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("resolves role by table", func(t *testing.T) {
		svc, _, _, _ := newAuthFixture(t)
		_, err := svc.RegisterLandlord(ctx, "Lars", "lars@example.com", "secret123", []domain.PropertyType{domain.PropertyTypeApartments})
		require.NoError(t, err)

		session, err := svc.Login(ctx, "lars@example.com", "secret123")
		require.NoError(t, err)
		require.Equal(t, domain.RoleLandlord, session.Principal.Role)
	})

	t.Run("wrong password rejected", func(t *testing.T) {
		svc, _, _, _ := newAuthFixture(t)
		_, err := svc.RegisterTenant(ctx, "Thea", "thea@example.com", "secret123", domain.TenantKindGeneral)
		require.NoError(t, err)

		_, err = svc.Login(ctx, "thea@example.com", "wrong")
		require.Error(t, err)
	})

	t.Run("unknown email rejected", func(t *testing.T) {
		svc, _, _, _ := newAuthFixture(t)

		_, err := svc.Login(ctx, "ghost@example.com", "secret123")
		require.Error(t, err)
	})
}

func TestTrusteeLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("resolves a view from a tenant's grant", func(t *testing.T) {
		svc, tenants, _, _ := newAuthFixture(t)

		roomID := "room-1"
		tenant := &domain.Tenant{
			Account:      domain.Account{ID: "tenant-1", Name: "Thea", Email: "thea@example.com"},
			LeasedRoomID: &roomID,
			Trustees: []domain.TrusteeGrant{
				{ID: "grant-1", Name: "Uncle Theo", Email: "theo@example.com"},
			},
		}
		require.NoError(t, tenants.Create(ctx, tenant))

		session, err := svc.LoginTrustee(ctx, "Theo@Example.com")
		require.NoError(t, err)
		require.Equal(t, domain.RoleTrustee, session.Principal.Role)
		require.Equal(t, "grant-1", session.Principal.Trustee.ID)
		require.Equal(t, "tenant-1", session.Principal.Trustee.TenantInTrust.ID)
		require.Equal(t, roomID, *session.Principal.Trustee.TenantInTrust.LeasedRoomID)
	})

	t.Run("no grant means no session", func(t *testing.T) {
		svc, _, _, _ := newAuthFixture(t)

		_, err := svc.LoginTrustee(ctx, "nobody@example.com")
		require.Error(t, err)
	})

	t.Run("trustee token round-trips through the manager", func(t *testing.T) {
		svc, tenants, _, _ := newAuthFixture(t)
		tenant := &domain.Tenant{
			Account:  domain.Account{ID: "tenant-1", Name: "Thea", Email: "thea@example.com"},
			Trustees: []domain.TrusteeGrant{{ID: "grant-1", Name: "Theo", Email: "theo@example.com"}},
		}
		require.NoError(t, tenants.Create(ctx, tenant))

		session, err := svc.LoginTrustee(ctx, "theo@example.com")
		require.NoError(t, err)

		claims, err := svc.TokenManager().ParseToken(session.Token)
		require.NoError(t, err)
		require.Equal(t, "grant-1", claims.SubjectID)
		require.Equal(t, domain.RoleTrustee, claims.Role)
		require.Equal(t, "tenant-1", claims.GrantorTenantID)
	})
}
