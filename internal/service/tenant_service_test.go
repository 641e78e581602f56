package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/getaroom/rental-service/internal/auth"
	"github.com/getaroom/rental-service/internal/domain"
	"github.com/getaroom/rental-service/internal/events"
)

type tenantFixture struct {
	service    *TenantService
	tenants    *fakeTenantRepo
	landlords  *fakeLandlordRepo
	dispatcher *recordingDispatcher

	tenant   *domain.Tenant
	landlord *domain.Landlord
}

func newTenantFixture(t *testing.T) *tenantFixture {
	t.Helper()
	ctx := context.Background()

	tenants := newFakeTenantRepo()
	landlords := newFakeLandlordRepo()
	dispatcher := &recordingDispatcher{}

	roomID := "room-1"
	endDate := "2026-12-31"
	tenant := &domain.Tenant{
		Account:      domain.Account{ID: "tenant-1", Name: "Thea", Email: "thea@example.com"},
		LeasedRoomID: &roomID,
		LeaseEndDate: &endDate,
		Warnings:     []string{},
		Trustees:     []domain.TrusteeGrant{},
	}
	require.NoError(t, tenants.Create(ctx, tenant))

	landlord := &domain.Landlord{
		Account:           domain.Account{ID: "landlord-1", Name: "Lars"},
		ManagedProperties: []string{roomID},
	}
	require.NoError(t, landlords.Create(ctx, landlord))

	return &tenantFixture{
		service: NewTenantService(TenantDependencies{
			TenantRepo:   tenants,
			LandlordRepo: landlords,
			Dispatcher:   dispatcher,
		}),
		tenants:    tenants,
		landlords:  landlords,
		dispatcher: dispatcher,
		tenant:     tenant,
		landlord:   landlord,
	}
}

func TestTrusteeGrants(t *testing.T) {
	ctx := context.Background()

	t.Run("add and remove", func(t *testing.T) {
		fx := newTenantFixture(t)
		actor := auth.TenantPrincipal(fx.tenant)

		grant, err := fx.service.AddTrustee(ctx, actor, "Uncle Theo", "Theo@Example.com")
		require.NoError(t, err)
		require.NotEmpty(t, grant.ID)
		require.Equal(t, "theo@example.com", grant.Email)
		require.Len(t, fx.tenant.Trustees, 1)

		require.NoError(t, fx.service.RemoveTrustee(ctx, actor, grant.ID))
		require.Empty(t, fx.tenant.Trustees)
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		fx := newTenantFixture(t)
		actor := auth.TenantPrincipal(fx.tenant)

		_, err := fx.service.AddTrustee(ctx, actor, "Uncle Theo", "theo@example.com")
		require.NoError(t, err)
		_, err = fx.service.AddTrustee(ctx, actor, "Theo Again", "theo@example.com")
		require.Error(t, err)
	})

	t.Run("removing an unknown grant fails", func(t *testing.T) {
		fx := newTenantFixture(t)
		actor := auth.TenantPrincipal(fx.tenant)

		require.Error(t, fx.service.RemoveTrustee(ctx, actor, "no-such-grant"))
	})

	t.Run("landlord cannot manage trustees", func(t *testing.T) {
		fx := newTenantFixture(t)
		actor := auth.LandlordPrincipal(fx.landlord)

		_, err := fx.service.AddTrustee(ctx, actor, "Uncle Theo", "theo@example.com")
		require.Error(t, err)
	})
}

func TestLeaseExtension(t *testing.T) {
	ctx := context.Background()

	t.Run("request then approve moves the end date", func(t *testing.T) {
		fx := newTenantFixture(t)
		tenantActor := auth.TenantPrincipal(fx.tenant)
		landlordActor := auth.LandlordPrincipal(fx.landlord)

		require.NoError(t, fx.service.RequestLeaseExtension(ctx, tenantActor, "2027-06-30"))
		require.NotNil(t, fx.tenant.LeaseExtension)
		require.Equal(t, domain.LeaseDecisionPending, fx.tenant.LeaseExtension.Status)

		require.NoError(t, fx.service.DecideLeaseExtension(ctx, landlordActor, fx.tenant.ID, domain.LeaseDecisionApproved))
		require.Equal(t, domain.LeaseDecisionApproved, fx.tenant.LeaseExtension.Status)
		require.Equal(t, "2027-06-30", *fx.tenant.LeaseEndDate)
		require.Len(t, fx.dispatcher.published(events.EventLeaseExtensionDecided), 1)
	})

	t.Run("rejection keeps the end date", func(t *testing.T) {
		fx := newTenantFixture(t)
		tenantActor := auth.TenantPrincipal(fx.tenant)
		landlordActor := auth.LandlordPrincipal(fx.landlord)

		require.NoError(t, fx.service.RequestLeaseExtension(ctx, tenantActor, "2027-06-30"))
		require.NoError(t, fx.service.DecideLeaseExtension(ctx, landlordActor, fx.tenant.ID, domain.LeaseDecisionRejected))
		require.Equal(t, "2026-12-31", *fx.tenant.LeaseEndDate)
	})

	t.Run("no pending request to decide", func(t *testing.T) {
		fx := newTenantFixture(t)
		landlordActor := auth.LandlordPrincipal(fx.landlord)

		err := fx.service.DecideLeaseExtension(ctx, landlordActor, fx.tenant.ID, domain.LeaseDecisionApproved)
		require.Error(t, err)
	})

	t.Run("request requires an active lease", func(t *testing.T) {
		fx := newTenantFixture(t)
		homeless := &domain.Tenant{Account: domain.Account{ID: "tenant-2"}}
		require.NoError(t, fx.tenants.Create(ctx, homeless))

		err := fx.service.RequestLeaseExtension(ctx, auth.TenantPrincipal(homeless), "2027-06-30")
		require.Error(t, err)
	})

	t.Run("unrelated landlord cannot decide", func(t *testing.T) {
		fx := newTenantFixture(t)
		require.NoError(t, fx.service.RequestLeaseExtension(ctx, auth.TenantPrincipal(fx.tenant), "2027-06-30"))

		other := auth.LandlordPrincipal(&domain.Landlord{Account: domain.Account{ID: "landlord-2"}})
		err := fx.service.DecideLeaseExtension(ctx, other, fx.tenant.ID, domain.LeaseDecisionApproved)
		require.Error(t, err)
	})
}

func TestWarningsAndRatings(t *testing.T) {
	ctx := context.Background()

	t.Run("landlord issues warning", func(t *testing.T) {
		fx := newTenantFixture(t)
		actor := auth.LandlordPrincipal(fx.landlord)

		require.NoError(t, fx.service.IssueWarning(ctx, actor, fx.tenant.ID, "late night noise"))
		require.Equal(t, []string{"late night noise"}, fx.tenant.Warnings)
		require.Len(t, fx.dispatcher.published(events.EventWarningIssued), 1)
	})

	t.Run("landlord rates tenant", func(t *testing.T) {
		fx := newTenantFixture(t)
		actor := auth.LandlordPrincipal(fx.landlord)

		require.NoError(t, fx.service.RateTenant(ctx, actor, fx.tenant.ID, 4.5))
		require.NotNil(t, fx.tenant.Rating)
		require.Equal(t, 4.5, *fx.tenant.Rating)
	})

	t.Run("rating bounds enforced", func(t *testing.T) {
		fx := newTenantFixture(t)
		actor := auth.LandlordPrincipal(fx.landlord)

		require.Error(t, fx.service.RateTenant(ctx, actor, fx.tenant.ID, 5.5))
	})
}

func TestRateLandlord(t *testing.T) {
	ctx := context.Background()

	withStay := func(t *testing.T, fx *tenantFixture, reviewed bool) *auth.Principal {
		t.Helper()
		fx.tenant.BookingHistory = []domain.BookingHistoryEntry{{
			BookingID:  "booking-1",
			RoomID:     "room-1",
			RoomName:   "Sunny Loft",
			LandlordID: fx.landlord.ID,
			Reviewed:   reviewed,
		}}
		return auth.TenantPrincipal(fx.tenant)
	}

	t.Run("review consumes the unreviewed stay", func(t *testing.T) {
		fx := newTenantFixture(t)
		actor := withStay(t, fx, false)

		require.NoError(t, fx.service.RateLandlord(ctx, actor, fx.landlord.ID, 5, "great host"))
		require.Len(t, fx.landlord.Reviews, 1)
		require.Equal(t, "great host", fx.landlord.Reviews[0].Comment)
		require.True(t, fx.tenant.BookingHistory[0].Reviewed)
	})

	t.Run("second review of the same stay is rejected", func(t *testing.T) {
		fx := newTenantFixture(t)
		actor := withStay(t, fx, false)

		require.NoError(t, fx.service.RateLandlord(ctx, actor, fx.landlord.ID, 5, "great host"))
		require.Error(t, fx.service.RateLandlord(ctx, actor, fx.landlord.ID, 1, "changed my mind"))
	})

	t.Run("no completed stay means no review", func(t *testing.T) {
		fx := newTenantFixture(t)
		actor := auth.TenantPrincipal(fx.tenant)

		require.Error(t, fx.service.RateLandlord(ctx, actor, fx.landlord.ID, 5, ""))
	})
}
