package events

import (
	"time"

	"github.com/getaroom/rental-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventBookingSubmitted      EventType = "booking_submitted"
	EventBookingDecided        EventType = "booking_decided"
	EventFaultReported         EventType = "fault_reported"
	EventBidPlaced             EventType = "bid_placed"
	EventBidAccepted           EventType = "bid_accepted"
	EventJobCompleted          EventType = "job_completed"
	EventTicketResolved        EventType = "ticket_resolved"
	EventComplaintFiled        EventType = "complaint_filed"
	EventWarningIssued         EventType = "warning_issued"
	EventLeaseExtensionDecided EventType = "lease_extension_decided"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	Role domain.Role `json:"role"`
	ID   string      `json:"id"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	EntityID  string      `json:"entity_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// BookingSubmittedPayload payload. The room's landlord is the notification
// recipient.
type BookingSubmittedPayload struct {
	TenantID   string  `json:"tenant_id"`
	RoomID     string  `json:"room_id"`
	LandlordID string  `json:"landlord_id"`
	ReferrerID *string `json:"referrer_id,omitempty"`
}

// BookingDecidedPayload payload. The applicant is the notification recipient.
type BookingDecidedPayload struct {
	TenantID string               `json:"tenant_id"`
	RoomID   string               `json:"room_id"`
	Decision domain.BookingStatus `json:"decision"`
}

// FaultReportedPayload payload.
type FaultReportedPayload struct {
	RoomID     string               `json:"room_id"`
	TenantID   string               `json:"tenant_id"`
	LandlordID string               `json:"landlord_id"`
	Category   domain.FaultCategory `json:"category"`
}

// BidPlacedPayload payload.
type BidPlacedPayload struct {
	BidID             string  `json:"bid_id"`
	ServiceProviderID string  `json:"service_provider_id"`
	Amount            float64 `json:"amount"`
}

// BidAcceptedPayload payload.
type BidAcceptedPayload struct {
	BidID             string `json:"bid_id"`
	ServiceProviderID string `json:"service_provider_id"`
}

// JobCompletedPayload payload.
type JobCompletedPayload struct {
	ServiceProviderID string `json:"service_provider_id"`
}

// TicketResolvedPayload payload.
type TicketResolvedPayload struct {
	TenantID   string `json:"tenant_id"`
	LandlordID string `json:"landlord_id"`
}

// ComplaintFiledPayload payload.
type ComplaintFiledPayload struct {
	FiledByID   string           `json:"filed_by_id"`
	AgainstID   string           `json:"against_id"`
	AgainstType domain.PartyType `json:"against_type"`
}

// WarningIssuedPayload payload.
type WarningIssuedPayload struct {
	TenantID string `json:"tenant_id"`
	Message  string `json:"message"`
}

// LeaseExtensionDecidedPayload payload.
type LeaseExtensionDecidedPayload struct {
	TenantID string               `json:"tenant_id"`
	Decision domain.LeaseDecision `json:"decision"`
}
