package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/getaroom/rental-service/internal/api/dto"
	"github.com/getaroom/rental-service/internal/auth"
	"github.com/getaroom/rental-service/internal/service"
	apperrors "github.com/getaroom/rental-service/pkg/util"
)

// ConciergeHandler exposes the generated-content endpoints.
type ConciergeHandler struct {
	concierge *service.ConciergeService
	rooms     *service.RoomService
}

// NewConciergeHandler constructs handler.
func NewConciergeHandler(concierge *service.ConciergeService, rooms *service.RoomService) *ConciergeHandler {
	return &ConciergeHandler{concierge: concierge, rooms: rooms}
}

// WelcomeMessage GET /concierge/rooms/:id/welcome.
func (h *ConciergeHandler) WelcomeMessage(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	room, err := h.rooms.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	text := h.concierge.WelcomeMessage(c.Context(), principal.Name(), room)
	return c.JSON(fiber.Map{"data": dto.ConciergeTextResponse{Text: text}})
}

// NearbyPlaces POST /concierge/rooms/:id/nearby.
func (h *ConciergeHandler) NearbyPlaces(c *fiber.Ctx) error {
	if _, ok := auth.PrincipalFromContext(c); !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.NearbyPlacesRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	room, err := h.rooms.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	text, err := h.concierge.NearbyPlaces(c.Context(), room, req.Latitude, req.Longitude, req.Interest)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.ConciergeTextResponse{Text: text}})
}
