package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/getaroom/rental-service/internal/auth"
	"github.com/getaroom/rental-service/internal/domain"
	"github.com/getaroom/rental-service/internal/events"
)

type ticketFixture struct {
	service    *TicketService
	tickets    *fakeTicketRepo
	rooms      *fakeRoomRepo
	dispatcher *recordingDispatcher

	tenant   *auth.Principal
	landlord *auth.Principal
	plumber  *auth.Principal
	room     *domain.Room
}

func newTicketFixture(t *testing.T) *ticketFixture {
	t.Helper()

	rooms := newFakeRoomRepo()
	tickets := newFakeTicketRepo()
	dispatcher := &recordingDispatcher{}

	room := &domain.Room{
		ID:           "room-1",
		LandlordID:   "landlord-1",
		Name:         "Sunny Loft",
		Location:     "Amsterdam",
		MaxOccupancy: 2,
	}
	require.NoError(t, rooms.Create(context.Background(), room))

	roomID := room.ID
	tenant := auth.TenantPrincipal(&domain.Tenant{
		Account:      domain.Account{ID: "tenant-1", Name: "Thea"},
		LeasedRoomID: &roomID,
	})
	landlord := auth.LandlordPrincipal(&domain.Landlord{
		Account:           domain.Account{ID: "landlord-1", Name: "Lars"},
		ManagedProperties: []string{room.ID},
	})
	plumber := auth.ProviderPrincipal(&domain.ServiceProvider{
		Account:  domain.Account{ID: "provider-1", Name: "Pipes & Co"},
		Services: []domain.ServiceCategory{domain.ServicePlumbing},
	})

	return &ticketFixture{
		service: NewTicketService(TicketDependencies{
			TicketRepo: tickets,
			RoomRepo:   rooms,
			Dispatcher: dispatcher,
		}),
		tickets:    tickets,
		rooms:      rooms,
		dispatcher: dispatcher,
		tenant:     tenant,
		landlord:   landlord,
		plumber:    plumber,
		room:       room,
	}
}

func TestTicketLifecycle(t *testing.T) {
	ctx := context.Background()

	t.Run("full lifecycle with dual confirmation", func(t *testing.T) {
		fx := newTicketFixture(t)

		ticket, err := fx.service.Report(ctx, fx.tenant, TicketReportInput{
			RoomID:      fx.room.ID,
			Category:    domain.FaultPlumbing,
			Description: "leaking sink",
		})
		require.NoError(t, err)
		require.Equal(t, domain.TicketStatusReported, ticket.Status)
		require.Equal(t, "tenant-1", ticket.TenantID)
		require.Equal(t, "landlord-1", ticket.LandlordID)

		ticket, err = fx.service.PlaceBid(ctx, fx.plumber, ticket.ID, 120, "can come tomorrow")
		require.NoError(t, err)
		require.Equal(t, domain.TicketStatusPendingApproval, ticket.Status)
		require.Len(t, ticket.Bids, 1)

		ticket, err = fx.service.AcceptBid(ctx, fx.landlord, ticket.ID, ticket.Bids[0].ID)
		require.NoError(t, err)
		require.Equal(t, domain.TicketStatusInProgress, ticket.Status)
		require.NotNil(t, ticket.AcceptedBidID)

		ticket, err = fx.service.MarkJobComplete(ctx, fx.plumber, ticket.ID)
		require.NoError(t, err)
		require.Equal(t, domain.TicketStatusPendingConfirmation, ticket.Status)

		ticket, err = fx.service.ConfirmResolution(ctx, fx.tenant, ticket.ID)
		require.NoError(t, err)
		require.Equal(t, domain.TicketStatusPendingConfirmation, ticket.Status)
		require.True(t, ticket.TenantConfirmedResolved)
		require.False(t, ticket.LandlordConfirmedResolved)
		require.Empty(t, fx.dispatcher.published(events.EventTicketResolved))

		ticket, err = fx.service.ConfirmResolution(ctx, fx.landlord, ticket.ID)
		require.NoError(t, err)
		require.Equal(t, domain.TicketStatusResolved, ticket.Status)
		require.Len(t, fx.dispatcher.published(events.EventTicketResolved), 1)
	})

	t.Run("confirmations arrive in either order", func(t *testing.T) {
		fx := newTicketFixture(t)

		ticket := reportAndStartJob(t, fx)

		ticket, err := fx.service.ConfirmResolution(ctx, fx.landlord, ticket.ID)
		require.NoError(t, err)
		require.Equal(t, domain.TicketStatusPendingConfirmation, ticket.Status)

		ticket, err = fx.service.ConfirmResolution(ctx, fx.tenant, ticket.ID)
		require.NoError(t, err)
		require.Equal(t, domain.TicketStatusResolved, ticket.Status)
	})

	t.Run("trustee reports for the tenant in trust", func(t *testing.T) {
		fx := newTicketFixture(t)
		roomID := fx.room.ID
		trustee := auth.TrusteePrincipal(&domain.TrusteeView{
			ID:   "grant-1",
			Name: "Uncle Theo",
			TenantInTrust: domain.TenantInTrust{
				ID:           "tenant-1",
				Name:         "Thea",
				LeasedRoomID: &roomID,
			},
		})

		ticket, err := fx.service.Report(ctx, trustee, TicketReportInput{
			RoomID:      fx.room.ID,
			Category:    domain.FaultElectrical,
			Description: "flickering lights",
		})
		require.NoError(t, err)
		require.Equal(t, "tenant-1", ticket.TenantID)
	})

	t.Run("tenant cannot report for a room they do not lease", func(t *testing.T) {
		fx := newTicketFixture(t)
		otherRoom := "room-2"
		stranger := auth.TenantPrincipal(&domain.Tenant{
			Account:      domain.Account{ID: "tenant-2"},
			LeasedRoomID: &otherRoom,
		})

		_, err := fx.service.Report(ctx, stranger, TicketReportInput{
			RoomID:      fx.room.ID,
			Category:    domain.FaultPlumbing,
			Description: "leaking sink",
		})
		require.Error(t, err)
	})
}

func TestTicketBidding(t *testing.T) {
	ctx := context.Background()

	t.Run("provider outside the category cannot bid", func(t *testing.T) {
		fx := newTicketFixture(t)
		ticket := reportTicket(t, fx)

		gardener := auth.ProviderPrincipal(&domain.ServiceProvider{
			Account:  domain.Account{ID: "provider-2", Name: "Green Thumb"},
			Services: []domain.ServiceCategory{domain.ServiceGardening},
		})
		_, err := fx.service.PlaceBid(ctx, gardener, ticket.ID, 80, "")
		require.Error(t, err)
	})

	t.Run("duplicate bid is rejected", func(t *testing.T) {
		fx := newTicketFixture(t)
		ticket := reportTicket(t, fx)

		_, err := fx.service.PlaceBid(ctx, fx.plumber, ticket.ID, 120, "")
		require.NoError(t, err)
		_, err = fx.service.PlaceBid(ctx, fx.plumber, ticket.ID, 100, "lower offer")
		require.Error(t, err)
	})

	t.Run("second provider bid does not advance the status again", func(t *testing.T) {
		fx := newTicketFixture(t)
		ticket := reportTicket(t, fx)

		_, err := fx.service.PlaceBid(ctx, fx.plumber, ticket.ID, 120, "")
		require.NoError(t, err)

		second := auth.ProviderPrincipal(&domain.ServiceProvider{
			Account:  domain.Account{ID: "provider-3", Name: "Drain Masters"},
			Services: []domain.ServiceCategory{domain.ServicePlumbing},
		})
		ticket, err = fx.service.PlaceBid(ctx, second, ticket.ID, 110, "")
		require.NoError(t, err)
		require.Equal(t, domain.TicketStatusPendingApproval, ticket.Status)
		require.Len(t, ticket.Bids, 2)
	})

	t.Run("only the landlord of the room accepts bids", func(t *testing.T) {
		fx := newTicketFixture(t)
		ticket := reportTicket(t, fx)
		ticket, err := fx.service.PlaceBid(ctx, fx.plumber, ticket.ID, 120, "")
		require.NoError(t, err)

		otherLandlord := auth.LandlordPrincipal(&domain.Landlord{
			Account: domain.Account{ID: "landlord-2"},
		})
		_, err = fx.service.AcceptBid(ctx, otherLandlord, ticket.ID, ticket.Bids[0].ID)
		require.Error(t, err)
	})

	t.Run("bids close once work is in progress", func(t *testing.T) {
		fx := newTicketFixture(t)
		ticket := reportAndStartJob(t, fx)

		late := auth.ProviderPrincipal(&domain.ServiceProvider{
			Account:  domain.Account{ID: "provider-4"},
			Services: []domain.ServiceCategory{domain.ServicePlumbing},
		})
		_, err := fx.service.PlaceBid(ctx, late, ticket.ID, 90, "")
		require.Error(t, err)
	})
}

func TestTicketTransitionGuards(t *testing.T) {
	ctx := context.Background()

	t.Run("job cannot complete before a bid is accepted", func(t *testing.T) {
		fx := newTicketFixture(t)
		ticket := reportTicket(t, fx)
		_, err := fx.service.PlaceBid(ctx, fx.plumber, ticket.ID, 120, "")
		require.NoError(t, err)

		_, err = fx.service.MarkJobComplete(ctx, fx.plumber, ticket.ID)
		require.Error(t, err)
	})

	t.Run("confirmation requires pending confirmation state", func(t *testing.T) {
		fx := newTicketFixture(t)
		ticket := reportTicket(t, fx)

		_, err := fx.service.ConfirmResolution(ctx, fx.tenant, ticket.ID)
		require.Error(t, err)
	})

	t.Run("only the accepted provider completes the job", func(t *testing.T) {
		fx := newTicketFixture(t)
		ticket := reportAndStartJob(t, fx)

		impostor := auth.ProviderPrincipal(&domain.ServiceProvider{
			Account:  domain.Account{ID: "provider-5"},
			Services: []domain.ServiceCategory{domain.ServicePlumbing},
		})
		_, err := fx.service.MarkJobComplete(ctx, impostor, ticket.ID)
		require.Error(t, err)
	})
}

func TestTicketListings(t *testing.T) {
	ctx := context.Background()
	fx := newTicketFixture(t)
	ticket := reportTicket(t, fx)

	t.Run("open tickets visible to matching provider", func(t *testing.T) {
		open, err := fx.service.ListOpenForProvider(ctx, fx.plumber, 20, 0)
		require.NoError(t, err)
		require.Len(t, open, 1)
		require.Equal(t, ticket.ID, open[0].ID)
	})

	t.Run("open tickets hidden from non-matching provider", func(t *testing.T) {
		cleaner := auth.ProviderPrincipal(&domain.ServiceProvider{
			Account:  domain.Account{ID: "provider-6"},
			Services: []domain.ServiceCategory{domain.ServiceCleaning},
		})
		open, err := fx.service.ListOpenForProvider(ctx, cleaner, 20, 0)
		require.NoError(t, err)
		require.Empty(t, open)
	})

	t.Run("landlord sees tickets across managed rooms", func(t *testing.T) {
		list, err := fx.service.ListForLandlord(ctx, fx.landlord, nil, 20, 0)
		require.NoError(t, err)
		require.Len(t, list, 1)
	})
}

func reportTicket(t *testing.T, fx *ticketFixture) *domain.FaultTicket {
	t.Helper()
	ticket, err := fx.service.Report(context.Background(), fx.tenant, TicketReportInput{
		RoomID:      fx.room.ID,
		Category:    domain.FaultPlumbing,
		Description: "leaking sink",
	})
	require.NoError(t, err)
	return ticket
}

func reportAndStartJob(t *testing.T, fx *ticketFixture) *domain.FaultTicket {
	t.Helper()
	ctx := context.Background()

	ticket := reportTicket(t, fx)
	ticket, err := fx.service.PlaceBid(ctx, fx.plumber, ticket.ID, 120, "")
	require.NoError(t, err)
	ticket, err = fx.service.AcceptBid(ctx, fx.landlord, ticket.ID, ticket.Bids[0].ID)
	require.NoError(t, err)
	ticket, err = fx.service.MarkJobComplete(ctx, fx.plumber, ticket.ID)
	require.NoError(t, err)
	require.Equal(t, domain.TicketStatusPendingConfirmation, ticket.Status)
	return ticket
}
