package domain

import "time"

// Role enumerates stored account variants. Trustees are not stored accounts;
// see TrusteeView.
type Role string

const (
	RoleTenant          Role = "TENANT"
	RoleLandlord        Role = "LANDLORD"
	RoleServiceProvider Role = "SERVICE_PROVIDER"
	RoleTrustee         Role = "TRUSTEE"
)

// TenantKind differentiates student tenants from general tenants.
type TenantKind string

const (
	TenantKindStudent TenantKind = "Student"
	TenantKindGeneral TenantKind = "General Tenant"
)

// RentStatus tracks whether the current rent period is settled.
type RentStatus string

const (
	RentStatusPaid    RentStatus = "Paid"
	RentStatusOverdue RentStatus = "Overdue"
)

// LeaseDecision is the state of a lease-extension request.
type LeaseDecision string

const (
	LeaseDecisionPending  LeaseDecision = "Pending"
	LeaseDecisionApproved LeaseDecision = "Approved"
	LeaseDecisionRejected LeaseDecision = "Rejected"
)

// Account holds identity fields common to every stored user variant.
type Account struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TrusteeGrant is a delegated-access record owned by a tenant. It is not an
// account of its own; login by a trustee email scans tenants' grants.
type TrusteeGrant struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// LeaseExtensionRequest is a tenant's pending request to extend the lease.
type LeaseExtensionRequest struct {
	Status           LeaseDecision `json:"status"`
	RequestedEndDate string        `json:"requested_end_date"`
}

// BookingHistoryEntry records a completed stay. Reviewed flips once the tenant
// has rated the landlord for this stay.
type BookingHistoryEntry struct {
	BookingID  string `json:"booking_id"`
	RoomID     string `json:"room_id"`
	RoomName   string `json:"room_name"`
	LandlordID string `json:"landlord_id"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	Reviewed   bool   `json:"reviewed"`
}

// Tenant is a renting-role account with an optional active lease on one room.
type Tenant struct {
	Account
	Kind           TenantKind
	LeasedRoomID   *string
	LeaseStartDate *string
	LeaseEndDate   *string
	RentAmount     float64
	RentDueDate    string
	RentStatus     RentStatus
	Warnings       []string
	LeaseExtension *LeaseExtensionRequest
	Trustees       []TrusteeGrant
	BookingHistory []BookingHistoryEntry
	Rating         *float64
}

// LandlordReview is a tenant-authored review of a landlord.
type LandlordReview struct {
	TenantID   string    `json:"tenant_id"`
	TenantName string    `json:"tenant_name"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	Date       time.Time `json:"date"`
}

// PropertyType categorizes a landlord's portfolio.
type PropertyType string

const (
	PropertyTypePrivateRooms PropertyType = "Private Rooms"
	PropertyTypeGuestHouses  PropertyType = "Guest Houses"
	PropertyTypeEntireHouses PropertyType = "Entire Houses"
	PropertyTypeApartments   PropertyType = "Apartments"
)

// Landlord manages a set of rooms and decides booking applications for them.
type Landlord struct {
	Account
	PropertyTypes     []PropertyType
	ManagedProperties []string
	Reviews           []LandlordReview
}

// ServiceCategory is a trade a service provider declares.
type ServiceCategory string

const (
	ServicePlumbing       ServiceCategory = "Plumbing"
	ServiceElectrical     ServiceCategory = "Electrical"
	ServiceCleaning       ServiceCategory = "Cleaning"
	ServiceGardening      ServiceCategory = "Gardening"
	ServiceGeneralRepairs ServiceCategory = "General Repairs"
	ServicePainting       ServiceCategory = "Painting"
	ServiceHVAC           ServiceCategory = "HVAC"
)

// ClientFeedback is feedback left for a service provider after a job.
type ClientFeedback struct {
	ClientName string    `json:"client_name"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	Date       time.Time `json:"date"`
}

// ServiceProvider bids on fault tickets within its declared services.
type ServiceProvider struct {
	Account
	Services      []ServiceCategory
	AverageRating *float64
	Feedback      []ClientFeedback
}

// Offers reports whether the provider declares the given service.
func (p *ServiceProvider) Offers(category ServiceCategory) bool {
	for _, svc := range p.Services {
		if svc == category {
			return true
		}
	}
	return false
}

// TenantInTrust is the back-reference from a trustee view to its granting
// tenant.
type TenantInTrust struct {
	ID           string
	Name         string
	LeasedRoomID *string
}

// TrusteeView is the resolved identity a trustee logs in as. It carries no
// stored account data beyond the grant; authority is scoped to exactly one
// tenant's leased room.
type TrusteeView struct {
	ID            string
	Name          string
	Email         string
	TenantInTrust TenantInTrust
}
