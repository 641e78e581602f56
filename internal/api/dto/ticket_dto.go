package dto

import (
	"time"

	"github.com/getaroom/rental-service/internal/domain"
)

// ReportFaultRequest payload.
type ReportFaultRequest struct {
	RoomID      string               `json:"room_id"`
	Category    domain.FaultCategory `json:"category"`
	Description string               `json:"description"`
}

// PlaceBidRequest payload.
type PlaceBidRequest struct {
	Amount float64 `json:"amount"`
	Notes  string  `json:"notes"`
}

// AcceptBidRequest payload.
type AcceptBidRequest struct {
	BidID string `json:"bid_id"`
}

// JobBidResponse response.
type JobBidResponse struct {
	ID                  string  `json:"id"`
	ServiceProviderID   string  `json:"service_provider_id"`
	ServiceProviderName string  `json:"service_provider_name"`
	Amount              float64 `json:"amount"`
	Notes               string  `json:"notes"`
}

// TicketResponse response.
type TicketResponse struct {
	ID                        string               `json:"id"`
	RoomID                    string               `json:"room_id"`
	TenantID                  string               `json:"tenant_id"`
	LandlordID                string               `json:"landlord_id"`
	Description               string               `json:"description"`
	Category                  domain.FaultCategory `json:"category"`
	Status                    domain.TicketStatus  `json:"status"`
	ReportedAt                time.Time            `json:"reported_at"`
	Bids                      []JobBidResponse     `json:"bids"`
	AcceptedBidID             *string              `json:"accepted_bid_id,omitempty"`
	TenantConfirmedResolved   bool                 `json:"tenant_confirmed_resolved"`
	LandlordConfirmedResolved bool                 `json:"landlord_confirmed_resolved"`
	CreatedAt                 time.Time            `json:"created_at"`
	UpdatedAt                 time.Time            `json:"updated_at"`
}
