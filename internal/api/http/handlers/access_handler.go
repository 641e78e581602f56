package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/getaroom/rental-service/internal/api/dto"
	"github.com/getaroom/rental-service/internal/auth"
	"github.com/getaroom/rental-service/internal/service"
	apperrors "github.com/getaroom/rental-service/pkg/util"
)

// AccessHandler manages keyless-entry endpoints.
type AccessHandler struct {
	service *service.AccessService
}

// NewAccessHandler constructs handler.
func NewAccessHandler(accessService *service.AccessService) *AccessHandler {
	return &AccessHandler{service: accessService}
}

// ToggleLock POST /rooms/:id/lock/toggle.
func (h *AccessHandler) ToggleLock(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	state, err := h.service.Toggle(c.Context(), principal, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.LockStateResponse{RoomID: c.Params("id"), State: string(state)}})
}

// LockState GET /rooms/:id/lock.
func (h *AccessHandler) LockState(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	state, err := h.service.State(c.Context(), principal, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.LockStateResponse{RoomID: c.Params("id"), State: string(state)}})
}
