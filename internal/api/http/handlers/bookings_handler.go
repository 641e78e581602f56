package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/getaroom/rental-service/internal/api/dto"
	"github.com/getaroom/rental-service/internal/auth"
	"github.com/getaroom/rental-service/internal/domain"
	"github.com/getaroom/rental-service/internal/service"
	apperrors "github.com/getaroom/rental-service/pkg/util"
)

// BookingsHandler manages booking-application endpoints.
type BookingsHandler struct {
	service *service.BookingService
}

// NewBookingsHandler constructs handler.
func NewBookingsHandler(bookingService *service.BookingService) *BookingsHandler {
	return &BookingsHandler{service: bookingService}
}

// SubmitBooking POST /bookings.
func (h *BookingsHandler) SubmitBooking(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.SubmitBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	booking, err := h.service.Submit(c.Context(), principal, service.BookingSubmitInput{
		RoomID:            req.RoomID,
		NumberOfAdults:    req.NumberOfAdults,
		NumberOfChildren:  req.NumberOfChildren,
		MessageToLandlord: req.MessageToLandlord,
		ReferrerID:        req.ReferrerID,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": bookingResponse(booking)})
}

// DecideBooking POST /bookings/:id/decision.
func (h *BookingsHandler) DecideBooking(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.DecideBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	booking, err := h.service.Decide(c.Context(), principal, c.Params("id"), req.Decision)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": bookingResponse(booking)})
}

// ListOwnBookings GET /bookings.
func (h *BookingsHandler) ListOwnBookings(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	limit, offset := pagination(c)
	bookings, err := h.service.ListForTenant(c.Context(), principal, limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": bookingResponses(bookings)})
}

// ListLandlordBookings GET /landlord/bookings.
func (h *BookingsHandler) ListLandlordBookings(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var statuses []domain.BookingStatus
	if statusStr := c.Query("status"); statusStr != "" {
		for _, part := range strings.Split(statusStr, ",") {
			statuses = append(statuses, domain.BookingStatus(strings.TrimSpace(part)))
		}
	}
	limit, offset := pagination(c)
	bookings, err := h.service.ListForLandlord(c.Context(), principal, statuses, limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": bookingResponses(bookings)})
}

func bookingResponse(booking *domain.BookingApplication) dto.BookingResponse {
	return dto.BookingResponse{
		ID:                booking.ID,
		TenantID:          booking.TenantID,
		RoomID:            booking.RoomID,
		Status:            booking.Status,
		ApplicationDate:   booking.ApplicationDate,
		MessageToLandlord: booking.MessageToLandlord,
		ReferrerID:        booking.ReferrerID,
		NumberOfAdults:    booking.NumberOfAdults,
		NumberOfChildren:  booking.NumberOfChildren,
		CreatedAt:         booking.CreatedAt,
		UpdatedAt:         booking.UpdatedAt,
	}
}

func bookingResponses(bookings []domain.BookingApplication) []dto.BookingResponse {
	items := make([]dto.BookingResponse, 0, len(bookings))
	for i := range bookings {
		items = append(items, bookingResponse(&bookings[i]))
	}
	return items
}
