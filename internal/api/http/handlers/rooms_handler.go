package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/getaroom/rental-service/internal/api/dto"
	"github.com/getaroom/rental-service/internal/auth"
	"github.com/getaroom/rental-service/internal/domain"
	"github.com/getaroom/rental-service/internal/service"
	apperrors "github.com/getaroom/rental-service/pkg/util"
)

// RoomsHandler manages room registration and the public browse surface.
type RoomsHandler struct {
	service *service.RoomService
}

// NewRoomsHandler constructs handler.
func NewRoomsHandler(roomService *service.RoomService) *RoomsHandler {
	return &RoomsHandler{service: roomService}
}

// CreateRoom POST /rooms.
func (h *RoomsHandler) CreateRoom(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateRoomRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	room, err := h.service.Register(c.Context(), principal, service.RoomRegisterInput{
		Name:         req.Name,
		Location:     req.Location,
		Pricing:      req.Pricing,
		ImageURL:     req.ImageURL,
		Description:  req.Description,
		Amenities:    req.Amenities,
		MaxOccupancy: req.MaxOccupancy,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": roomResponse(room)})
}

// SearchRooms GET /rooms.
func (h *RoomsHandler) SearchRooms(c *fiber.Ctx) error {
	input := service.RoomSearchInput{}
	if loc := c.Query("location"); loc != "" {
		input.Location = &loc
	}
	if maxPrice := parseFloat(c.Query("max_price")); maxPrice != nil {
		input.MaxPrice = maxPrice
	}
	if amenities := c.Query("amenities"); amenities != "" {
		for _, part := range strings.Split(amenities, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				input.Amenities = append(input.Amenities, trimmed)
			}
		}
	}
	if minRating := parseFloat(c.Query("min_rating")); minRating != nil {
		input.MinRating = minRating
	}
	if occupancy := c.Query("min_occupancy"); occupancy != "" {
		if parsed, err := strconv.Atoi(occupancy); err == nil && parsed > 0 {
			input.MinOccupancy = &parsed
		}
	}
	input.Limit, input.Offset = pagination(c)

	rooms, err := h.service.Search(c.Context(), input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": roomResponses(rooms)})
}

// GetRoom GET /rooms/:id.
func (h *RoomsHandler) GetRoom(c *fiber.Ctx) error {
	room, err := h.service.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": roomResponse(room)})
}

// ListOwnRooms GET /landlord/rooms.
func (h *RoomsHandler) ListOwnRooms(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	limit, offset := pagination(c)
	rooms, err := h.service.ListForLandlord(c.Context(), principal, limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": roomResponses(rooms)})
}

func roomResponse(room *domain.Room) dto.RoomResponse {
	return dto.RoomResponse{
		ID:           room.ID,
		LandlordID:   room.LandlordID,
		Name:         room.Name,
		Location:     room.Location,
		Pricing:      room.Pricing,
		ImageURL:     room.ImageURL,
		Description:  room.Description,
		Amenities:    room.Amenities,
		Rating:       room.Rating,
		MaxOccupancy: room.MaxOccupancy,
		CreatedAt:    room.CreatedAt,
		UpdatedAt:    room.UpdatedAt,
	}
}

func roomResponses(rooms []domain.Room) []dto.RoomResponse {
	items := make([]dto.RoomResponse, 0, len(rooms))
	for i := range rooms {
		items = append(items, roomResponse(&rooms[i]))
	}
	return items
}

func parseFloat(val string) *float64 {
	if val == "" {
		return nil
	}
	parsed, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return nil
	}
	return &parsed
}

// pagination reads page/page_size query params into limit and offset.
func pagination(c *fiber.Ctx) (limit, offset int) {
	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("page_size"), 20)
	return pageSize, (page - 1) * pageSize
}

func parseInt(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}
