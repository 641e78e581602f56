package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/getaroom/rental-service/internal/auth"
	"github.com/getaroom/rental-service/internal/domain"
	"github.com/getaroom/rental-service/internal/events"
	"github.com/getaroom/rental-service/internal/repository"
	apperrors "github.com/getaroom/rental-service/pkg/util"
)

// ticketTransitions is the strict forward order of the fault-ticket state
// machine. There is no backward edge and Resolved is terminal.
var ticketTransitions = map[domain.TicketStatus]domain.TicketStatus{
	domain.TicketStatusReported:            domain.TicketStatusPendingApproval,
	domain.TicketStatusPendingApproval:     domain.TicketStatusInProgress,
	domain.TicketStatusInProgress:          domain.TicketStatusPendingConfirmation,
	domain.TicketStatusPendingConfirmation: domain.TicketStatusResolved,
}

func advanceTicket(ticket *domain.FaultTicket, next domain.TicketStatus) error {
	if ticketTransitions[ticket.Status] != next {
		return apperrors.NewConflict("invalid ticket transition", map[string]any{
			"from": ticket.Status,
			"to":   next,
		})
	}
	ticket.Status = next
	return nil
}

// TicketService coordinates the fault-ticket workflow: report, bid, accept,
// complete, dual confirmation.
type TicketService struct {
	tickets    repository.TicketRepository
	rooms      repository.RoomRepository
	dispatcher events.Dispatcher
}

// TicketDependencies bundles repositories for the ticket service.
type TicketDependencies struct {
	TicketRepo repository.TicketRepository
	RoomRepo   repository.RoomRepository
	Dispatcher events.Dispatcher
}

// TicketReportInput describes a fault report payload.
type TicketReportInput struct {
	RoomID      string
	Category    domain.FaultCategory
	Description string
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:    deps.TicketRepo,
		rooms:      deps.RoomRepo,
		dispatcher: deps.Dispatcher,
	}
}

// Report opens a ticket in Reported state. Tenants report for their leased
// room; trustees report on behalf of their tenant-in-trust.
func (s *TicketService) Report(ctx context.Context, actor *auth.Principal, input TicketReportInput) (*domain.FaultTicket, error) {
	if strings.TrimSpace(input.Description) == "" {
		return nil, apperrors.NewValidationError("description required", nil)
	}
	if input.Category == "" {
		return nil, apperrors.NewValidationError("category required", nil)
	}

	room, err := s.rooms.GetByID(ctx, input.RoomID)
	if err != nil {
		return nil, notFoundOr(err, "room", map[string]any{"room_id": input.RoomID})
	}
	if !auth.Can(actor, auth.ActionReportFault, auth.Target{Room: room}) {
		return nil, apperrors.NewForbidden("faults are reported for your own leased room")
	}

	tenantID := ""
	switch actor.Role {
	case domain.RoleTenant:
		tenantID = actor.Tenant.ID
	case domain.RoleTrustee:
		tenantID = actor.Trustee.TenantInTrust.ID
	}

	ticket := &domain.FaultTicket{
		RoomID:      room.ID,
		TenantID:    tenantID,
		LandlordID:  room.LandlordID,
		Description: strings.TrimSpace(input.Description),
		Category:    input.Category,
		Status:      domain.TicketStatusReported,
		ReportedAt:  time.Now(),
		Bids:        []domain.JobBid{},
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}

	publish(ctx, s.dispatcher, events.Event{
		Type:     events.EventFaultReported,
		EntityID: ticket.ID,
		Actor:    actorOf(actor),
		Payload: events.FaultReportedPayload{
			RoomID:     ticket.RoomID,
			TenantID:   ticket.TenantID,
			LandlordID: ticket.LandlordID,
			Category:   ticket.Category,
		},
	})
	return ticket, nil
}

// PlaceBid records a provider's offer. The provider's declared services must
// cover the ticket category, and at most one bid per provider is kept. The
// first bid moves the ticket from Reported to Pending Approval; later bids
// accumulate while the landlord has not yet accepted one.
func (s *TicketService) PlaceBid(ctx context.Context, actor *auth.Principal, ticketID string, amount float64, notes string) (*domain.FaultTicket, error) {
	if amount <= 0 {
		return nil, apperrors.NewValidationError("bid amount must be positive", nil)
	}

	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, notFoundOr(err, "fault ticket", map[string]any{"ticket_id": ticketID})
	}
	if !auth.Can(actor, auth.ActionPlaceBid, auth.Target{Ticket: ticket}) {
		return nil, apperrors.NewForbidden("service does not cover this fault category")
	}
	if ticket.Status != domain.TicketStatusReported && ticket.Status != domain.TicketStatusPendingApproval {
		return nil, apperrors.NewConflict("ticket is no longer open for bids", map[string]any{"status": ticket.Status})
	}
	if ticket.BidBy(actor.Provider.ID) != nil {
		return nil, apperrors.NewConflict("provider already bid on this ticket", nil)
	}

	bid := domain.JobBid{
		ID:                  uuid.NewString(),
		ServiceProviderID:   actor.Provider.ID,
		ServiceProviderName: actor.Provider.Name,
		Amount:              amount,
		Notes:               strings.TrimSpace(notes),
	}
	ticket.Bids = append(ticket.Bids, bid)
	if ticket.Status == domain.TicketStatusReported {
		if err := advanceTicket(ticket, domain.TicketStatusPendingApproval); err != nil {
			return nil, err
		}
	}
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}

	publish(ctx, s.dispatcher, events.Event{
		Type:     events.EventBidPlaced,
		EntityID: ticket.ID,
		Actor:    actorOf(actor),
		Payload: events.BidPlacedPayload{
			BidID:             bid.ID,
			ServiceProviderID: bid.ServiceProviderID,
			Amount:            bid.Amount,
		},
	})
	return ticket, nil
}

// AcceptBid records the landlord's chosen bid as authoritative and moves the
// ticket to In Progress. Only one job follows from this transition.
func (s *TicketService) AcceptBid(ctx context.Context, actor *auth.Principal, ticketID, bidID string) (*domain.FaultTicket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, notFoundOr(err, "fault ticket", map[string]any{"ticket_id": ticketID})
	}
	if !auth.Can(actor, auth.ActionAcceptBid, auth.Target{Ticket: ticket}) {
		return nil, apperrors.NewForbidden("only the room's landlord accepts bids")
	}

	var accepted *domain.JobBid
	for i := range ticket.Bids {
		if ticket.Bids[i].ID == bidID {
			accepted = &ticket.Bids[i]
			break
		}
	}
	if accepted == nil {
		return nil, apperrors.NewNotFound("bid", map[string]any{"bid_id": bidID})
	}

	if err := advanceTicket(ticket, domain.TicketStatusInProgress); err != nil {
		return nil, err
	}
	ticket.AcceptedBidID = &accepted.ID
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}

	publish(ctx, s.dispatcher, events.Event{
		Type:     events.EventBidAccepted,
		EntityID: ticket.ID,
		Actor:    actorOf(actor),
		Payload: events.BidAcceptedPayload{
			BidID:             accepted.ID,
			ServiceProviderID: accepted.ServiceProviderID,
		},
	})
	return ticket, nil
}

// MarkJobComplete moves an In Progress ticket to Pending Confirmation. Only
// the provider behind the accepted bid may do this.
func (s *TicketService) MarkJobComplete(ctx context.Context, actor *auth.Principal, ticketID string) (*domain.FaultTicket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, notFoundOr(err, "fault ticket", map[string]any{"ticket_id": ticketID})
	}
	if !auth.Can(actor, auth.ActionMarkJobComplete, auth.Target{Ticket: ticket}) {
		return nil, apperrors.NewForbidden("only the assigned provider marks the job complete")
	}
	if err := advanceTicket(ticket, domain.TicketStatusPendingConfirmation); err != nil {
		return nil, err
	}
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}

	publish(ctx, s.dispatcher, events.Event{
		Type:     events.EventJobCompleted,
		EntityID: ticket.ID,
		Actor:    actorOf(actor),
		Payload: events.JobCompletedPayload{
			ServiceProviderID: actor.Provider.ID,
		},
	})
	return ticket, nil
}

// ConfirmResolution sets the acting party's confirmation flag. The flags are
// independent and may arrive in any order; the ticket becomes Resolved only on
// the confirmation that completes the pair. Neither party can close
// unilaterally.
func (s *TicketService) ConfirmResolution(ctx context.Context, actor *auth.Principal, ticketID string) (*domain.FaultTicket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, notFoundOr(err, "fault ticket", map[string]any{"ticket_id": ticketID})
	}
	if !auth.Can(actor, auth.ActionConfirmResolution, auth.Target{Ticket: ticket}) {
		return nil, apperrors.NewForbidden("only the ticket's tenant or landlord confirms resolution")
	}
	if ticket.Status != domain.TicketStatusPendingConfirmation {
		return nil, apperrors.NewConflict("ticket is not awaiting confirmation", map[string]any{"status": ticket.Status})
	}

	switch actor.Role {
	case domain.RoleTenant:
		ticket.TenantConfirmedResolved = true
	case domain.RoleLandlord:
		ticket.LandlordConfirmedResolved = true
	}

	if ticket.TenantConfirmedResolved && ticket.LandlordConfirmedResolved {
		if err := advanceTicket(ticket, domain.TicketStatusResolved); err != nil {
			return nil, err
		}
	}
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}

	if ticket.Status == domain.TicketStatusResolved {
		publish(ctx, s.dispatcher, events.Event{
			Type:     events.EventTicketResolved,
			EntityID: ticket.ID,
			Actor:    actorOf(actor),
			Payload: events.TicketResolvedPayload{
				TenantID:   ticket.TenantID,
				LandlordID: ticket.LandlordID,
			},
		})
	}
	return ticket, nil
}

// ListForTenant returns tickets raised by or for the tenant. Trustees see the
// tenant-in-trust's tickets.
func (s *TicketService) ListForTenant(ctx context.Context, actor *auth.Principal, limit, offset int) ([]domain.FaultTicket, error) {
	var tenantID string
	switch {
	case actor != nil && actor.Role == domain.RoleTenant && actor.Tenant != nil:
		tenantID = actor.Tenant.ID
	case actor != nil && actor.Role == domain.RoleTrustee && actor.Trustee != nil:
		tenantID = actor.Trustee.TenantInTrust.ID
	default:
		return nil, apperrors.NewForbidden("tenant or trustee required")
	}
	return s.tickets.ListWithFilter(ctx, repository.TicketFilter{
		TenantID: &tenantID,
		Limit:    limit,
		Offset:   offset,
	})
}

// ListForLandlord returns tickets across the landlord's rooms.
func (s *TicketService) ListForLandlord(ctx context.Context, actor *auth.Principal, statuses []domain.TicketStatus, limit, offset int) ([]domain.FaultTicket, error) {
	if actor == nil || actor.Role != domain.RoleLandlord || actor.Landlord == nil {
		return nil, apperrors.NewForbidden("landlord required")
	}
	landlordID := actor.Landlord.ID
	return s.tickets.ListWithFilter(ctx, repository.TicketFilter{
		LandlordID: &landlordID,
		Statuses:   statuses,
		Limit:      limit,
		Offset:     offset,
	})
}

// ListOpenForProvider returns tickets the provider could bid on: still open
// and within the provider's declared services.
func (s *TicketService) ListOpenForProvider(ctx context.Context, actor *auth.Principal, limit, offset int) ([]domain.FaultTicket, error) {
	if actor == nil || actor.Role != domain.RoleServiceProvider || actor.Provider == nil {
		return nil, apperrors.NewForbidden("service provider required")
	}
	categories := make([]domain.FaultCategory, 0, len(actor.Provider.Services))
	for _, svc := range actor.Provider.Services {
		categories = append(categories, domain.FaultCategory(svc))
	}
	if len(categories) == 0 {
		return []domain.FaultTicket{}, nil
	}
	return s.tickets.ListWithFilter(ctx, repository.TicketFilter{
		Statuses:   []domain.TicketStatus{domain.TicketStatusReported, domain.TicketStatusPendingApproval},
		Categories: categories,
		Limit:      limit,
		Offset:     offset,
	})
}

// ListJobsForProvider returns tickets the provider has bid on that are in or
// past the repair phase.
func (s *TicketService) ListJobsForProvider(ctx context.Context, actor *auth.Principal, limit, offset int) ([]domain.FaultTicket, error) {
	if actor == nil || actor.Role != domain.RoleServiceProvider || actor.Provider == nil {
		return nil, apperrors.NewForbidden("service provider required")
	}
	providerID := actor.Provider.ID
	return s.tickets.ListWithFilter(ctx, repository.TicketFilter{
		BidderID: &providerID,
		Statuses: []domain.TicketStatus{
			domain.TicketStatusInProgress,
			domain.TicketStatusPendingConfirmation,
			domain.TicketStatusResolved,
		},
		Limit:  limit,
		Offset: offset,
	})
}
