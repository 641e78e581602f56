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

// ComplaintService files and tracks complaints between role-holders. There is
// no resolution operation: moving a complaint to Resolved is a manual process
// outside this service.
type ComplaintService struct {
	complaints repository.ComplaintRepository
	dispatcher events.Dispatcher
}

// NewComplaintService constructs the service.
func NewComplaintService(complaints repository.ComplaintRepository, dispatcher events.Dispatcher) *ComplaintService {
	return &ComplaintService{complaints: complaints, dispatcher: dispatcher}
}

// File creates a Pending complaint dated at the call time.
func (s *ComplaintService) File(ctx context.Context, actor *auth.Principal, against domain.ComplaintTarget, reason string) (*domain.Complaint, error) {
	if !auth.Can(actor, auth.ActionFileComplaint, auth.Target{}) {
		return nil, apperrors.NewForbidden("complaints are filed by account holders")
	}
	if strings.TrimSpace(reason) == "" {
		return nil, apperrors.NewValidationError("reason required", nil)
	}
	if against.ID == "" || against.Name == "" {
		return nil, apperrors.NewValidationError("complaint target required", nil)
	}
	switch against.Type {
	case domain.PartyLandlord, domain.PartyTenant, domain.PartyServiceProvider:
	default:
		return nil, apperrors.NewValidationError("invalid complaint target type", nil)
	}

	complaint := &domain.Complaint{
		FiledByID:    actor.ID(),
		FiledAgainst: against,
		Reason:       strings.TrimSpace(reason),
		Status:       domain.ComplaintStatusPending,
		Date:         time.Now(),
	}
	if err := s.complaints.Create(ctx, complaint); err != nil {
		return nil, apperrors.MapError(err)
	}

	publish(ctx, s.dispatcher, events.Event{
		Type:     events.EventComplaintFiled,
		EntityID: complaint.ID,
		Actor:    actorOf(actor),
		Payload: events.ComplaintFiledPayload{
			FiledByID:   complaint.FiledByID,
			AgainstID:   complaint.FiledAgainst.ID,
			AgainstType: complaint.FiledAgainst.Type,
		},
	})
	return complaint, nil
}

// ListFiled returns complaints the actor has filed.
func (s *ComplaintService) ListFiled(ctx context.Context, actor *auth.Principal) ([]domain.Complaint, error) {
	if actor == nil || actor.ID() == "" {
		return nil, apperrors.NewForbidden("account required")
	}
	return s.complaints.ListByFiler(ctx, actor.ID())
}

// ListAgainst returns complaints filed against the actor.
func (s *ComplaintService) ListAgainst(ctx context.Context, actor *auth.Principal) ([]domain.Complaint, error) {
	if actor == nil || actor.ID() == "" {
		return nil, apperrors.NewForbidden("account required")
	}
	return s.complaints.ListAgainst(ctx, actor.ID())
}
