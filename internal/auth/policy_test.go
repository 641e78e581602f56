package auth

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/getaroom/rental-service/internal/domain"
)

func leasedTenant(id, roomID string) *Principal {
	return TenantPrincipal(&domain.Tenant{
		Account:      domain.Account{ID: id},
		LeasedRoomID: &roomID,
	})
}

func trusteeFor(tenantID, roomID string) *Principal {
	return TrusteePrincipal(&domain.TrusteeView{
		ID: "grant-1",
		TenantInTrust: domain.TenantInTrust{
			ID:           tenantID,
			LeasedRoomID: &roomID,
		},
	})
}

func managingLandlord(id string, roomIDs ...string) *Principal {
	return LandlordPrincipal(&domain.Landlord{
		Account:           domain.Account{ID: id},
		ManagedProperties: roomIDs,
	})
}

func TestCanReportFault(t *testing.T) {
	room := &domain.Room{ID: "room-1", LandlordID: "landlord-1"}

	require.True(t, Can(leasedTenant("tenant-1", "room-1"), ActionReportFault, Target{Room: room}))
	require.False(t, Can(leasedTenant("tenant-1", "room-2"), ActionReportFault, Target{Room: room}))
	require.True(t, Can(trusteeFor("tenant-1", "room-1"), ActionReportFault, Target{Room: room}))
	require.False(t, Can(trusteeFor("tenant-1", "room-2"), ActionReportFault, Target{Room: room}))
	require.False(t, Can(managingLandlord("landlord-1", "room-1"), ActionReportFault, Target{Room: room}))
	require.False(t, Can(nil, ActionReportFault, Target{Room: room}))
}

func TestCanDecideBooking(t *testing.T) {
	room := &domain.Room{ID: "room-1", LandlordID: "landlord-1"}

	require.True(t, Can(managingLandlord("landlord-1", "room-1"), ActionDecideBooking, Target{Room: room}))
	require.False(t, Can(managingLandlord("landlord-2", "room-9"), ActionDecideBooking, Target{Room: room}))
	require.False(t, Can(leasedTenant("tenant-1", "room-1"), ActionDecideBooking, Target{Room: room}))
}

func TestCanBidAndComplete(t *testing.T) {
	bidID := "bid-1"
	ticket := &domain.FaultTicket{
		ID:         "ticket-1",
		LandlordID: "landlord-1",
		TenantID:   "tenant-1",
		Category:   domain.FaultPlumbing,
		Bids: []domain.JobBid{
			{ID: bidID, ServiceProviderID: "provider-1"},
		},
		AcceptedBidID: &bidID,
	}

	plumber := ProviderPrincipal(&domain.ServiceProvider{
		Account:  domain.Account{ID: "provider-1"},
		Services: []domain.ServiceCategory{domain.ServicePlumbing},
	})
	gardener := ProviderPrincipal(&domain.ServiceProvider{
		Account:  domain.Account{ID: "provider-2"},
		Services: []domain.ServiceCategory{domain.ServiceGardening},
	})

	require.True(t, Can(plumber, ActionPlaceBid, Target{Ticket: ticket}))
	require.False(t, Can(gardener, ActionPlaceBid, Target{Ticket: ticket}))

	require.True(t, Can(plumber, ActionMarkJobComplete, Target{Ticket: ticket}))
	require.False(t, Can(gardener, ActionMarkJobComplete, Target{Ticket: ticket}))

	require.True(t, Can(managingLandlord("landlord-1"), ActionAcceptBid, Target{Ticket: ticket}))
	require.False(t, Can(managingLandlord("landlord-2"), ActionAcceptBid, Target{Ticket: ticket}))
}

func TestCanConfirmResolution(t *testing.T) {
	ticket := &domain.FaultTicket{ID: "ticket-1", TenantID: "tenant-1", LandlordID: "landlord-1"}

	require.True(t, Can(leasedTenant("tenant-1", "room-1"), ActionConfirmResolution, Target{Ticket: ticket}))
	require.False(t, Can(leasedTenant("tenant-2", "room-1"), ActionConfirmResolution, Target{Ticket: ticket}))
	require.True(t, Can(managingLandlord("landlord-1"), ActionConfirmResolution, Target{Ticket: ticket}))
	// Trustees never confirm; the confirmation pair is tenant and landlord.
	require.False(t, Can(trusteeFor("tenant-1", "room-1"), ActionConfirmResolution, Target{Ticket: ticket}))
}

func TestCanLandlordAuthorityOverTenant(t *testing.T) {
	roomID := "room-1"
	tenant := &domain.Tenant{
		Account:      domain.Account{ID: "tenant-1"},
		LeasedRoomID: &roomID,
	}

	owner := managingLandlord("landlord-1", "room-1")
	stranger := managingLandlord("landlord-2", "room-9")

	for _, action := range []Action{ActionDecideLeaseExt, ActionIssueWarning, ActionRateTenant} {
		require.True(t, Can(owner, action, Target{Tenant: tenant}), string(action))
		require.False(t, Can(stranger, action, Target{Tenant: tenant}), string(action))
	}

	// No active lease means no landlord authority.
	free := &domain.Tenant{Account: domain.Account{ID: "tenant-2"}}
	require.False(t, Can(owner, ActionIssueWarning, Target{Tenant: free}))
}

func TestCanRateLandlord(t *testing.T) {
	withHistory := TenantPrincipal(&domain.Tenant{
		Account: domain.Account{ID: "tenant-1"},
		BookingHistory: []domain.BookingHistoryEntry{
			{BookingID: "b1", LandlordID: "landlord-1", Reviewed: false},
		},
	})
	allReviewed := TenantPrincipal(&domain.Tenant{
		Account: domain.Account{ID: "tenant-1"},
		BookingHistory: []domain.BookingHistoryEntry{
			{BookingID: "b1", LandlordID: "landlord-1", Reviewed: true},
		},
	})

	require.True(t, Can(withHistory, ActionRateLandlord, Target{LandlordID: "landlord-1"}))
	require.False(t, Can(withHistory, ActionRateLandlord, Target{LandlordID: "landlord-2"}))
	require.False(t, Can(allReviewed, ActionRateLandlord, Target{LandlordID: "landlord-1"}))
}

func TestCanToggleKeylessEntry(t *testing.T) {
	require.True(t, Can(leasedTenant("tenant-1", "room-1"), ActionToggleKeylessEntry, Target{RoomID: "room-1"}))
	require.False(t, Can(leasedTenant("tenant-1", "room-1"), ActionToggleKeylessEntry, Target{RoomID: "room-2"}))
	require.True(t, Can(trusteeFor("tenant-1", "room-1"), ActionToggleKeylessEntry, Target{RoomID: "room-1"}))
	require.False(t, Can(managingLandlord("landlord-1", "room-1"), ActionToggleKeylessEntry, Target{RoomID: "room-1"}))
}

func TestCanFileComplaint(t *testing.T) {
	require.True(t, Can(leasedTenant("tenant-1", "room-1"), ActionFileComplaint, Target{}))
	require.True(t, Can(managingLandlord("landlord-1"), ActionFileComplaint, Target{}))
	require.True(t, Can(ProviderPrincipal(&domain.ServiceProvider{Account: domain.Account{ID: "p1"}}), ActionFileComplaint, Target{}))
	require.False(t, Can(trusteeFor("tenant-1", "room-1"), ActionFileComplaint, Target{}))
}
