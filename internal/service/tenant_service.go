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

// TenantService covers tenant account operations outside the booking and
// ticket workflows: trustee grants, lease extensions, warnings and ratings.
type TenantService struct {
	tenants    repository.TenantRepository
	landlords  repository.LandlordRepository
	dispatcher events.Dispatcher
}

// TenantDependencies bundles repositories for the tenant service.
type TenantDependencies struct {
	TenantRepo   repository.TenantRepository
	LandlordRepo repository.LandlordRepository
	Dispatcher   events.Dispatcher
}

// NewTenantService constructs the service.
func NewTenantService(deps TenantDependencies) *TenantService {
	return &TenantService{
		tenants:    deps.TenantRepo,
		landlords:  deps.LandlordRepo,
		dispatcher: deps.Dispatcher,
	}
}

// AddTrustee grants delegated access to the acting tenant's leased room.
func (s *TenantService) AddTrustee(ctx context.Context, actor *auth.Principal, name, email string) (*domain.TrusteeGrant, error) {
	tenant, err := s.requireSelf(actor, auth.ActionManageTrustees)
	if err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" {
		return nil, apperrors.NewValidationError("trustee name and email required", nil)
	}
	for _, grant := range tenant.Trustees {
		if strings.EqualFold(grant.Email, email) {
			return nil, apperrors.NewConflict("trustee already granted", map[string]any{"email": email})
		}
	}

	grant := domain.TrusteeGrant{ID: uuid.NewString(), Name: name, Email: email}
	tenant.Trustees = append(tenant.Trustees, grant)
	if err := s.tenants.Update(ctx, tenant); err != nil {
		return nil, apperrors.MapError(err)
	}
	return &grant, nil
}

// RemoveTrustee revokes a trustee grant.
func (s *TenantService) RemoveTrustee(ctx context.Context, actor *auth.Principal, trusteeID string) error {
	tenant, err := s.requireSelf(actor, auth.ActionManageTrustees)
	if err != nil {
		return err
	}
	kept := tenant.Trustees[:0]
	found := false
	for _, grant := range tenant.Trustees {
		if grant.ID == trusteeID {
			found = true
			continue
		}
		kept = append(kept, grant)
	}
	if !found {
		return apperrors.NewNotFound("trustee grant", map[string]any{"trustee_id": trusteeID})
	}
	tenant.Trustees = kept
	if err := s.tenants.Update(ctx, tenant); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

// RequestLeaseExtension files or replaces the tenant's extension request.
func (s *TenantService) RequestLeaseExtension(ctx context.Context, actor *auth.Principal, requestedEndDate string) error {
	tenant, err := s.requireSelf(actor, auth.ActionRequestLeaseExt)
	if err != nil {
		return err
	}
	if strings.TrimSpace(requestedEndDate) == "" {
		return apperrors.NewValidationError("requested_end_date required", nil)
	}
	if tenant.LeasedRoomID == nil {
		return apperrors.NewConflict("no active lease to extend", nil)
	}

	tenant.LeaseExtension = &domain.LeaseExtensionRequest{
		Status:           domain.LeaseDecisionPending,
		RequestedEndDate: requestedEndDate,
	}
	if err := s.tenants.Update(ctx, tenant); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

// DecideLeaseExtension records the landlord's decision. Approval moves the
// lease end date to the requested date.
func (s *TenantService) DecideLeaseExtension(ctx context.Context, actor *auth.Principal, tenantID string, decision domain.LeaseDecision) error {
	if decision != domain.LeaseDecisionApproved && decision != domain.LeaseDecisionRejected {
		return apperrors.NewValidationError("decision must be Approved or Rejected", nil)
	}
	tenant, err := s.tenants.GetByID(ctx, tenantID)
	if err != nil {
		return notFoundOr(err, "tenant", map[string]any{"tenant_id": tenantID})
	}
	if !auth.Can(actor, auth.ActionDecideLeaseExt, auth.Target{Tenant: tenant}) {
		return apperrors.NewForbidden("only the leased room's landlord decides extensions")
	}
	if tenant.LeaseExtension == nil || tenant.LeaseExtension.Status != domain.LeaseDecisionPending {
		return apperrors.NewConflict("no pending extension request", nil)
	}

	tenant.LeaseExtension.Status = decision
	if decision == domain.LeaseDecisionApproved {
		endDate := tenant.LeaseExtension.RequestedEndDate
		tenant.LeaseEndDate = &endDate
	}
	if err := s.tenants.Update(ctx, tenant); err != nil {
		return apperrors.MapError(err)
	}

	publish(ctx, s.dispatcher, events.Event{
		Type:     events.EventLeaseExtensionDecided,
		EntityID: tenant.ID,
		Actor:    actorOf(actor),
		Payload: events.LeaseExtensionDecidedPayload{
			TenantID: tenant.ID,
			Decision: decision,
		},
	})
	return nil
}

// IssueWarning appends a landlord warning to the tenant's record.
func (s *TenantService) IssueWarning(ctx context.Context, actor *auth.Principal, tenantID, message string) error {
	if strings.TrimSpace(message) == "" {
		return apperrors.NewValidationError("warning message required", nil)
	}
	tenant, err := s.tenants.GetByID(ctx, tenantID)
	if err != nil {
		return notFoundOr(err, "tenant", map[string]any{"tenant_id": tenantID})
	}
	if !auth.Can(actor, auth.ActionIssueWarning, auth.Target{Tenant: tenant}) {
		return apperrors.NewForbidden("only the leased room's landlord issues warnings")
	}

	tenant.Warnings = append(tenant.Warnings, strings.TrimSpace(message))
	if err := s.tenants.Update(ctx, tenant); err != nil {
		return apperrors.MapError(err)
	}

	publish(ctx, s.dispatcher, events.Event{
		Type:     events.EventWarningIssued,
		EntityID: tenant.ID,
		Actor:    actorOf(actor),
		Payload: events.WarningIssuedPayload{
			TenantID: tenant.ID,
			Message:  message,
		},
	})
	return nil
}

// RateTenant sets the landlord's rating for a tenant.
func (s *TenantService) RateTenant(ctx context.Context, actor *auth.Principal, tenantID string, rating float64) error {
	if rating < 0 || rating > 5 {
		return apperrors.NewValidationError("rating must be between 0 and 5", nil)
	}
	tenant, err := s.tenants.GetByID(ctx, tenantID)
	if err != nil {
		return notFoundOr(err, "tenant", map[string]any{"tenant_id": tenantID})
	}
	if !auth.Can(actor, auth.ActionRateTenant, auth.Target{Tenant: tenant}) {
		return apperrors.NewForbidden("only the leased room's landlord rates the tenant")
	}

	tenant.Rating = &rating
	if err := s.tenants.Update(ctx, tenant); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

// RateLandlord appends the tenant's review to the landlord and consumes one
// unreviewed booking-history entry for that landlord. One review per completed
// stay. The two record updates are separate writes with last-writer-wins
// semantics.
func (s *TenantService) RateLandlord(ctx context.Context, actor *auth.Principal, landlordID string, rating int, comment string) error {
	if rating < 0 || rating > 5 {
		return apperrors.NewValidationError("rating must be between 0 and 5", nil)
	}
	if !auth.Can(actor, auth.ActionRateLandlord, auth.Target{LandlordID: landlordID}) {
		return apperrors.NewForbidden("no completed unreviewed stay with this landlord")
	}

	landlord, err := s.landlords.GetByID(ctx, landlordID)
	if err != nil {
		return notFoundOr(err, "landlord", map[string]any{"landlord_id": landlordID})
	}

	tenant := actor.Tenant
	landlord.Reviews = append(landlord.Reviews, domain.LandlordReview{
		TenantID:   tenant.ID,
		TenantName: tenant.Name,
		Rating:     rating,
		Comment:    strings.TrimSpace(comment),
		Date:       time.Now(),
	})
	if err := s.landlords.Update(ctx, landlord); err != nil {
		return apperrors.MapError(err)
	}

	for i := range tenant.BookingHistory {
		if tenant.BookingHistory[i].LandlordID == landlordID && !tenant.BookingHistory[i].Reviewed {
			tenant.BookingHistory[i].Reviewed = true
			break
		}
	}
	if err := s.tenants.Update(ctx, tenant); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

func (s *TenantService) requireSelf(actor *auth.Principal, action auth.Action) (*domain.Tenant, error) {
	if actor == nil || actor.Role != domain.RoleTenant || actor.Tenant == nil {
		return nil, apperrors.NewForbidden("tenant required")
	}
	if !auth.Can(actor, action, auth.Target{Tenant: actor.Tenant}) {
		return nil, apperrors.NewForbidden("operation limited to your own account")
	}
	return actor.Tenant, nil
}
