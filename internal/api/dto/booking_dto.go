package dto

import (
	"time"

	"github.com/getaroom/rental-service/internal/domain"
)

// SubmitBookingRequest payload.
type SubmitBookingRequest struct {
	RoomID            string  `json:"room_id"`
	NumberOfAdults    int     `json:"number_of_adults"`
	NumberOfChildren  int     `json:"number_of_children"`
	MessageToLandlord string  `json:"message_to_landlord"`
	ReferrerID        *string `json:"referrer_id,omitempty"`
}

// DecideBookingRequest payload.
type DecideBookingRequest struct {
	Decision domain.BookingStatus `json:"decision"`
}

// BookingResponse response.
type BookingResponse struct {
	ID                string               `json:"id"`
	TenantID          string               `json:"tenant_id"`
	RoomID            string               `json:"room_id"`
	Status            domain.BookingStatus `json:"status"`
	ApplicationDate   time.Time            `json:"application_date"`
	MessageToLandlord string               `json:"message_to_landlord"`
	ReferrerID        *string              `json:"referrer_id,omitempty"`
	NumberOfAdults    int                  `json:"number_of_adults"`
	NumberOfChildren  int                  `json:"number_of_children"`
	CreatedAt         time.Time            `json:"created_at"`
	UpdatedAt         time.Time            `json:"updated_at"`
}
