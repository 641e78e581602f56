package domain

import "time"

// ComplaintStatus enumerates complaint states. No operation moves a complaint
// to Resolved; resolution is an external manual process.
type ComplaintStatus string

const (
	ComplaintStatusPending  ComplaintStatus = "Pending"
	ComplaintStatusResolved ComplaintStatus = "Resolved"
)

// PartyType identifies the kind of actor a complaint targets.
type PartyType string

const (
	PartyLandlord        PartyType = "Landlord"
	PartyTenant          PartyType = "Tenant"
	PartyServiceProvider PartyType = "Service Provider"
)

// ComplaintTarget names the party a complaint is filed against.
type ComplaintTarget struct {
	ID   string    `json:"id"`
	Name string    `json:"name"`
	Type PartyType `json:"type"`
}

// Complaint is filed by one role-holder against another.
type Complaint struct {
	ID           string
	FiledByID    string
	FiledAgainst ComplaintTarget
	Reason       string
	Status       ComplaintStatus
	Date         time.Time
	CreatedAt    time.Time
}
