package domain

import "time"

// Pricing is a partial rate map; at least one of the rates is set.
type Pricing struct {
	Hourly  *float64 `json:"hourly,omitempty"`
	Nightly *float64 `json:"nightly,omitempty"`
	Monthly *float64 `json:"monthly,omitempty"`
}

// HasRate reports whether any rate is present.
func (p Pricing) HasRate() bool {
	return p.Hourly != nil || p.Nightly != nil || p.Monthly != nil
}

// Room is a rentable unit. Immutable after creation except for administrative
// edits.
type Room struct {
	ID           string
	LandlordID   string
	Name         string
	Location     string
	Pricing      Pricing
	ImageURL     string
	Description  string
	Amenities    []string
	Rating       float64
	MaxOccupancy int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasAmenity reports whether the room lists the given amenity.
func (r *Room) HasAmenity(name string) bool {
	for _, a := range r.Amenities {
		if a == name {
			return true
		}
	}
	return false
}
