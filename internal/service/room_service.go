package service

import (
	"context"
	"strings"

	"github.com/getaroom/rental-service/internal/auth"
	"github.com/getaroom/rental-service/internal/domain"
	"github.com/getaroom/rental-service/internal/repository"
	apperrors "github.com/getaroom/rental-service/pkg/util"
)

// RoomService covers room registration and the browse/search surface.
type RoomService struct {
	rooms     repository.RoomRepository
	landlords repository.LandlordRepository
}

// RoomRegisterInput describes a new room listing.
type RoomRegisterInput struct {
	Name         string
	Location     string
	Pricing      domain.Pricing
	ImageURL     string
	Description  string
	Amenities    []string
	MaxOccupancy int
}

// RoomSearchInput carries optional browse filters.
type RoomSearchInput struct {
	Location     *string
	MaxPrice     *float64
	Amenities    []string
	MinRating    *float64
	MinOccupancy *int
	Limit        int
	Offset       int
}

// NewRoomService constructs the service.
func NewRoomService(rooms repository.RoomRepository, landlords repository.LandlordRepository) *RoomService {
	return &RoomService{rooms: rooms, landlords: landlords}
}

// Register creates a room owned by the acting landlord and records it in the
// landlord's managed properties. The two writes are separate; the room insert
// wins if the landlord update fails.
func (s *RoomService) Register(ctx context.Context, actor *auth.Principal, input RoomRegisterInput) (*domain.Room, error) {
	if !auth.Can(actor, auth.ActionRegisterRoom, auth.Target{}) {
		return nil, apperrors.NewForbidden("only landlords register rooms")
	}
	if strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.Location) == "" {
		return nil, apperrors.NewValidationError("name and location required", nil)
	}
	if !input.Pricing.HasRate() {
		return nil, apperrors.NewValidationError("at least one rate required", nil)
	}
	if input.MaxOccupancy < 1 {
		return nil, apperrors.NewValidationError("max_occupancy must be at least 1", nil)
	}

	room := &domain.Room{
		LandlordID:   actor.Landlord.ID,
		Name:         strings.TrimSpace(input.Name),
		Location:     strings.TrimSpace(input.Location),
		Pricing:      input.Pricing,
		ImageURL:     input.ImageURL,
		Description:  input.Description,
		Amenities:    input.Amenities,
		MaxOccupancy: input.MaxOccupancy,
	}
	if room.Amenities == nil {
		room.Amenities = []string{}
	}
	if err := s.rooms.Create(ctx, room); err != nil {
		return nil, apperrors.MapError(err)
	}

	landlord := actor.Landlord
	landlord.ManagedProperties = append(landlord.ManagedProperties, room.ID)
	if err := s.landlords.Update(ctx, landlord); err != nil {
		return nil, apperrors.MapError(err)
	}
	return room, nil
}

// Get fetches a single room.
func (s *RoomService) Get(ctx context.Context, roomID string) (*domain.Room, error) {
	room, err := s.rooms.GetByID(ctx, roomID)
	if err != nil {
		return nil, notFoundOr(err, "room", map[string]any{"room_id": roomID})
	}
	return room, nil
}

// Search lists rooms matching the given filters. Open to all callers.
func (s *RoomService) Search(ctx context.Context, input RoomSearchInput) ([]domain.Room, error) {
	rooms, err := s.rooms.ListWithFilter(ctx, repository.RoomFilter{
		Location:     input.Location,
		MaxPrice:     input.MaxPrice,
		Amenities:    input.Amenities,
		MinRating:    input.MinRating,
		MinOccupancy: input.MinOccupancy,
		Limit:        input.Limit,
		Offset:       input.Offset,
	})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return rooms, nil
}

// ListForLandlord returns the acting landlord's own listings.
func (s *RoomService) ListForLandlord(ctx context.Context, actor *auth.Principal, limit, offset int) ([]domain.Room, error) {
	if actor == nil || actor.Role != domain.RoleLandlord || actor.Landlord == nil {
		return nil, apperrors.NewForbidden("landlord required")
	}
	landlordID := actor.Landlord.ID
	rooms, err := s.rooms.ListWithFilter(ctx, repository.RoomFilter{
		LandlordID: &landlordID,
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return rooms, nil
}
