package service

import (
	"context"
	"strings"
	"time"

	"github.com/getaroom/rental-service/internal/auth"
	"github.com/getaroom/rental-service/internal/domain"
	"github.com/getaroom/rental-service/internal/events"
	"github.com/getaroom/rental-service/internal/repository"
	apperrors "github.com/getaroom/rental-service/pkg/util"
)

const (
	defaultBookingMessage = "No message provided."
	leaseDateFormat       = "2006-01-02"
	defaultLeaseMonths    = 12
)

// BookingService coordinates the booking-application workflow: a tenant's
// request to occupy a room and the landlord's decision on it.
type BookingService struct {
	bookings   repository.BookingRepository
	rooms      repository.RoomRepository
	tenants    repository.TenantRepository
	dispatcher events.Dispatcher
}

// BookingDependencies bundles repositories for the booking service.
type BookingDependencies struct {
	BookingRepo repository.BookingRepository
	RoomRepo    repository.RoomRepository
	TenantRepo  repository.TenantRepository
	Dispatcher  events.Dispatcher
}

// BookingSubmitInput describes a booking-application payload.
type BookingSubmitInput struct {
	RoomID            string
	NumberOfAdults    int
	NumberOfChildren  int
	MessageToLandlord string
	ReferrerID        *string
}

// NewBookingService constructs the service.
func NewBookingService(deps BookingDependencies) *BookingService {
	return &BookingService{
		bookings:   deps.BookingRepo,
		rooms:      deps.RoomRepo,
		tenants:    deps.TenantRepo,
		dispatcher: deps.Dispatcher,
	}
}

// Submit creates a Pending application for the acting tenant. Occupancy
// against the room's maximum is not enforced here; the landlord sees the
// party size on the application and decides.
func (s *BookingService) Submit(ctx context.Context, actor *auth.Principal, input BookingSubmitInput) (*domain.BookingApplication, error) {
	if !auth.Can(actor, auth.ActionSubmitBooking, auth.Target{}) {
		return nil, apperrors.NewForbidden("only tenants submit booking applications")
	}
	if input.RoomID == "" {
		return nil, apperrors.NewValidationError("room_id required", nil)
	}
	if input.NumberOfAdults < 1 {
		return nil, apperrors.NewValidationError("at least one adult required", nil)
	}
	if input.NumberOfChildren < 0 {
		return nil, apperrors.NewValidationError("number_of_children cannot be negative", nil)
	}

	room, err := s.rooms.GetByID(ctx, input.RoomID)
	if err != nil {
		return nil, notFoundOr(err, "room", map[string]any{"room_id": input.RoomID})
	}

	message := strings.TrimSpace(input.MessageToLandlord)
	if message == "" {
		message = defaultBookingMessage
	}

	booking := &domain.BookingApplication{
		TenantID:          actor.Tenant.ID,
		RoomID:            input.RoomID,
		Status:            domain.BookingStatusPending,
		ApplicationDate:   time.Now(),
		MessageToLandlord: message,
		ReferrerID:        input.ReferrerID,
		NumberOfAdults:    input.NumberOfAdults,
		NumberOfChildren:  input.NumberOfChildren,
	}
	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, apperrors.MapError(err)
	}

	publish(ctx, s.dispatcher, events.Event{
		Type:     events.EventBookingSubmitted,
		EntityID: booking.ID,
		Actor:    actorOf(actor),
		Payload: events.BookingSubmittedPayload{
			TenantID:   booking.TenantID,
			RoomID:     booking.RoomID,
			LandlordID: room.LandlordID,
			ReferrerID: booking.ReferrerID,
		},
	})
	return booking, nil
}

// Decide records the landlord's decision on an application. Re-deciding an
// already-decided application is not guarded; the decision simply overwrites.
// Approval moves the applicant onto the room; a later rejection of the same
// application does not unwind the lease.
func (s *BookingService) Decide(ctx context.Context, actor *auth.Principal, bookingID string, decision domain.BookingStatus) (*domain.BookingApplication, error) {
	if decision != domain.BookingStatusApproved && decision != domain.BookingStatusRejected {
		return nil, apperrors.NewValidationError("decision must be Approved or Rejected", nil)
	}

	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, notFoundOr(err, "booking application", map[string]any{"booking_id": bookingID})
	}
	room, err := s.rooms.GetByID(ctx, booking.RoomID)
	if err != nil {
		return nil, notFoundOr(err, "room", map[string]any{"room_id": booking.RoomID})
	}
	if !auth.Can(actor, auth.ActionDecideBooking, auth.Target{Room: room}) {
		return nil, apperrors.NewForbidden("only the room's landlord decides applications")
	}

	booking.Status = decision
	if err := s.bookings.Update(ctx, booking); err != nil {
		return nil, apperrors.MapError(err)
	}

	if decision == domain.BookingStatusApproved {
		if err := s.assignLease(ctx, booking, room); err != nil {
			return nil, err
		}
	}

	publish(ctx, s.dispatcher, events.Event{
		Type:     events.EventBookingDecided,
		EntityID: booking.ID,
		Actor:    actorOf(actor),
		Payload: events.BookingDecidedPayload{
			TenantID: booking.TenantID,
			RoomID:   booking.RoomID,
			Decision: decision,
		},
	})
	return booking, nil
}

// assignLease moves the applicant onto the approved room: lease window, rent
// schedule and a booking-history entry for the stay. The decision and the
// lease assignment are separate writes; the decision wins if the tenant
// update fails. Re-approving the same application refreshes the lease fields
// without duplicating the history entry.
func (s *BookingService) assignLease(ctx context.Context, booking *domain.BookingApplication, room *domain.Room) error {
	tenant, err := s.tenants.GetByID(ctx, booking.TenantID)
	if err != nil {
		return notFoundOr(err, "tenant", map[string]any{"tenant_id": booking.TenantID})
	}

	roomID := room.ID
	start := time.Now().Format(leaseDateFormat)
	end := time.Now().AddDate(0, defaultLeaseMonths, 0).Format(leaseDateFormat)
	tenant.LeasedRoomID = &roomID
	tenant.LeaseStartDate = &start
	tenant.LeaseEndDate = &end
	if room.Pricing.Monthly != nil {
		tenant.RentAmount = *room.Pricing.Monthly
	}
	tenant.RentDueDate = firstOfNextMonth()
	tenant.RentStatus = domain.RentStatusPaid

	if !hasBookingHistoryEntry(tenant.BookingHistory, booking.ID) {
		tenant.BookingHistory = append(tenant.BookingHistory, domain.BookingHistoryEntry{
			BookingID:  booking.ID,
			RoomID:     room.ID,
			RoomName:   room.Name,
			LandlordID: room.LandlordID,
			StartDate:  start,
			EndDate:    end,
		})
	}
	return apperrors.MapError(s.tenants.Update(ctx, tenant))
}

func hasBookingHistoryEntry(history []domain.BookingHistoryEntry, bookingID string) bool {
	for _, entry := range history {
		if entry.BookingID == bookingID {
			return true
		}
	}
	return false
}

func firstOfNextMonth() string {
	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return monthStart.AddDate(0, 1, 0).Format(leaseDateFormat)
}

// ListForTenant returns the acting tenant's applications.
func (s *BookingService) ListForTenant(ctx context.Context, actor *auth.Principal, limit, offset int) ([]domain.BookingApplication, error) {
	if actor == nil || actor.Role != domain.RoleTenant || actor.Tenant == nil {
		return nil, apperrors.NewForbidden("tenant required")
	}
	tenantID := actor.Tenant.ID
	return s.bookings.ListWithFilter(ctx, repository.BookingFilter{
		TenantID: &tenantID,
		Limit:    limit,
		Offset:   offset,
	})
}

// ListForLandlord returns applications for the landlord's managed rooms.
func (s *BookingService) ListForLandlord(ctx context.Context, actor *auth.Principal, statuses []domain.BookingStatus, limit, offset int) ([]domain.BookingApplication, error) {
	if actor == nil || actor.Role != domain.RoleLandlord || actor.Landlord == nil {
		return nil, apperrors.NewForbidden("landlord required")
	}
	if len(actor.Landlord.ManagedProperties) == 0 {
		return []domain.BookingApplication{}, nil
	}
	return s.bookings.ListWithFilter(ctx, repository.BookingFilter{
		RoomIDs:  actor.Landlord.ManagedProperties,
		Statuses: statuses,
		Limit:    limit,
		Offset:   offset,
	})
}
