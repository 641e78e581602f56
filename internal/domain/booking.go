package domain

import "time"

// BookingStatus enumerates booking-application states. Status values keep the
// stored wire form used by existing data.
type BookingStatus string

const (
	BookingStatusPending  BookingStatus = "Pending"
	BookingStatusApproved BookingStatus = "Approved"
	BookingStatusRejected BookingStatus = "Rejected"
)

// BookingApplication is a tenant's request to lease a room, decided by the
// room's landlord. Occupancy against the room's maximum is not enforced at
// submission; re-deciding an already-decided application is not guarded.
type BookingApplication struct {
	ID                string
	TenantID          string
	RoomID            string
	Status            BookingStatus
	ApplicationDate   time.Time
	MessageToLandlord string
	ReferrerID        *string
	NumberOfAdults    int
	NumberOfChildren  int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Decided reports whether the application has left Pending.
func (b *BookingApplication) Decided() bool {
	return b.Status != BookingStatusPending
}
