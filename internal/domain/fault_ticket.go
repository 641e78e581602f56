package domain

import "time"

// TicketStatus enumerates fault-ticket lifecycle states. The ordering is
// strict: Reported → Pending Approval → In Progress → Pending Confirmation →
// Resolved, with no backward transitions.
type TicketStatus string

const (
	TicketStatusReported            TicketStatus = "Reported"
	TicketStatusPendingApproval     TicketStatus = "Pending Approval"
	TicketStatusInProgress          TicketStatus = "In Progress"
	TicketStatusPendingConfirmation TicketStatus = "Pending Confirmation"
	TicketStatusResolved            TicketStatus = "Resolved"
)

// FaultCategory classifies a reported fault.
type FaultCategory string

const (
	FaultPlumbing       FaultCategory = "Plumbing"
	FaultElectrical     FaultCategory = "Electrical"
	FaultGeneralRepairs FaultCategory = "General Repairs"
	FaultOther          FaultCategory = "Other"
)

// JobBid is a service provider's offer on a fault ticket.
type JobBid struct {
	ID                  string  `json:"id"`
	ServiceProviderID   string  `json:"service_provider_id"`
	ServiceProviderName string  `json:"service_provider_name"`
	Amount              float64 `json:"amount"`
	Notes               string  `json:"notes"`
}

// FaultTicket is a maintenance request with a bid-then-confirm resolution
// workflow. Closure requires both parties' confirmation flags; neither side
// can resolve unilaterally.
type FaultTicket struct {
	ID                        string
	RoomID                    string
	TenantID                  string
	LandlordID                string
	Description               string
	Category                  FaultCategory
	Status                    TicketStatus
	ReportedAt                time.Time
	Bids                      []JobBid
	AcceptedBidID             *string
	TenantConfirmedResolved   bool
	LandlordConfirmedResolved bool
	CreatedAt                 time.Time
	UpdatedAt                 time.Time
}

// BidBy returns the bid placed by the given provider, if any.
func (t *FaultTicket) BidBy(serviceProviderID string) *JobBid {
	for i := range t.Bids {
		if t.Bids[i].ServiceProviderID == serviceProviderID {
			return &t.Bids[i]
		}
	}
	return nil
}

// AcceptedBid returns the landlord-accepted bid, if one has been recorded.
func (t *FaultTicket) AcceptedBid() *JobBid {
	if t.AcceptedBidID == nil {
		return nil
	}
	for i := range t.Bids {
		if t.Bids[i].ID == *t.AcceptedBidID {
			return &t.Bids[i]
		}
	}
	return nil
}
