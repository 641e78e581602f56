package dto

import (
	"time"

	"github.com/getaroom/rental-service/internal/domain"
)

// CreateRoomRequest payload.
type CreateRoomRequest struct {
	Name         string         `json:"name"`
	Location     string         `json:"location"`
	Pricing      domain.Pricing `json:"pricing"`
	ImageURL     string         `json:"image_url"`
	Description  string         `json:"description"`
	Amenities    []string       `json:"amenities"`
	MaxOccupancy int            `json:"max_occupancy"`
}

// RoomResponse response.
type RoomResponse struct {
	ID           string         `json:"id"`
	LandlordID   string         `json:"landlord_id"`
	Name         string         `json:"name"`
	Location     string         `json:"location"`
	Pricing      domain.Pricing `json:"pricing"`
	ImageURL     string         `json:"image_url"`
	Description  string         `json:"description"`
	Amenities    []string       `json:"amenities"`
	Rating       float64        `json:"rating"`
	MaxOccupancy int            `json:"max_occupancy"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// LockStateResponse response.
type LockStateResponse struct {
	RoomID string `json:"room_id"`
	State  string `json:"state"`
}

// NearbyPlacesRequest payload.
type NearbyPlacesRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Interest  string  `json:"interest"`
}

// ConciergeTextResponse response.
type ConciergeTextResponse struct {
	Text string `json:"text"`
}
