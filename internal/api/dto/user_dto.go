package dto

import (
	"time"

	"github.com/getaroom/rental-service/internal/domain"
)

// RegisterTenantRequest payload.
type RegisterTenantRequest struct {
	Name     string            `json:"name"`
	Email    string            `json:"email"`
	Password string            `json:"password"`
	Kind     domain.TenantKind `json:"kind"`
}

// RegisterLandlordRequest payload.
type RegisterLandlordRequest struct {
	Name          string                `json:"name"`
	Email         string                `json:"email"`
	Password      string                `json:"password"`
	PropertyTypes []domain.PropertyType `json:"property_types"`
}

// RegisterProviderRequest payload.
type RegisterProviderRequest struct {
	Name     string                   `json:"name"`
	Email    string                   `json:"email"`
	Password string                   `json:"password"`
	Services []domain.ServiceCategory `json:"services"`
}

// LoginRequest payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TrusteeLoginRequest payload. Trustee grants carry no password.
type TrusteeLoginRequest struct {
	Email string `json:"email"`
}

// ChangePasswordRequest payload.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// SessionResponse is returned from registration and login.
type SessionResponse struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
	Role      domain.Role `json:"role"`
	ID        string      `json:"id"`
	Name      string      `json:"name"`
}

// TrusteeGrantRequest payload.
type TrusteeGrantRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// TrusteeGrantResponse response.
type TrusteeGrantResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// LeaseExtensionRequestBody payload.
type LeaseExtensionRequestBody struct {
	RequestedEndDate string `json:"requested_end_date"`
}

// LeaseExtensionDecisionRequest payload.
type LeaseExtensionDecisionRequest struct {
	Decision domain.LeaseDecision `json:"decision"`
}

// WarningRequest payload.
type WarningRequest struct {
	Message string `json:"message"`
}

// RateTenantRequest payload.
type RateTenantRequest struct {
	Rating float64 `json:"rating"`
}

// RateLandlordRequest payload.
type RateLandlordRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// TenantProfileResponse response.
type TenantProfileResponse struct {
	ID             string                        `json:"id"`
	Name           string                        `json:"name"`
	Email          string                        `json:"email"`
	Kind           domain.TenantKind             `json:"kind"`
	LeasedRoomID   *string                       `json:"leased_room_id"`
	LeaseStartDate *string                       `json:"lease_start_date"`
	LeaseEndDate   *string                       `json:"lease_end_date"`
	RentAmount     float64                       `json:"rent_amount"`
	RentDueDate    string                        `json:"rent_due_date"`
	RentStatus     domain.RentStatus             `json:"rent_status"`
	Warnings       []string                      `json:"warnings"`
	LeaseExtension *domain.LeaseExtensionRequest `json:"lease_extension,omitempty"`
	Trustees       []TrusteeGrantResponse        `json:"trustees"`
	BookingHistory []domain.BookingHistoryEntry  `json:"booking_history"`
	Rating         *float64                      `json:"rating,omitempty"`
}

// LandlordProfileResponse response.
type LandlordProfileResponse struct {
	ID                string                  `json:"id"`
	Name              string                  `json:"name"`
	Email             string                  `json:"email"`
	PropertyTypes     []domain.PropertyType   `json:"property_types"`
	ManagedProperties []string                `json:"managed_properties"`
	Reviews           []domain.LandlordReview `json:"reviews"`
}

// ProviderProfileResponse response.
type ProviderProfileResponse struct {
	ID            string                   `json:"id"`
	Name          string                   `json:"name"`
	Email         string                   `json:"email"`
	Services      []domain.ServiceCategory `json:"services"`
	AverageRating *float64                 `json:"average_rating,omitempty"`
	Feedback      []domain.ClientFeedback  `json:"feedback"`
}
