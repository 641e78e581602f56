package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/getaroom/rental-service/internal/api/dto"
	"github.com/getaroom/rental-service/internal/auth"
	"github.com/getaroom/rental-service/internal/service"
	apperrors "github.com/getaroom/rental-service/pkg/util"
)

// TenantsHandler covers tenant-record operations: trustee grants, lease
// extensions, warnings and ratings.
type TenantsHandler struct {
	service *service.TenantService
}

// NewTenantsHandler constructs handler.
func NewTenantsHandler(tenantService *service.TenantService) *TenantsHandler {
	return &TenantsHandler{service: tenantService}
}

// AddTrustee POST /tenant/trustees.
func (h *TenantsHandler) AddTrustee(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.TrusteeGrantRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	grant, err := h.service.AddTrustee(c.Context(), principal, req.Name, req.Email)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.TrusteeGrantResponse{
		ID:    grant.ID,
		Name:  grant.Name,
		Email: grant.Email,
	}})
}

// RemoveTrustee DELETE /tenant/trustees/:id.
func (h *TenantsHandler) RemoveTrustee(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	if err := h.service.RemoveTrustee(c.Context(), principal, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"removed": true}})
}

// RequestLeaseExtension POST /tenant/lease-extension.
func (h *TenantsHandler) RequestLeaseExtension(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.LeaseExtensionRequestBody
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := h.service.RequestLeaseExtension(c.Context(), principal, req.RequestedEndDate); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": fiber.Map{"requested": true}})
}

// DecideLeaseExtension POST /landlord/tenants/:id/lease-extension/decision.
func (h *TenantsHandler) DecideLeaseExtension(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.LeaseExtensionDecisionRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := h.service.DecideLeaseExtension(c.Context(), principal, c.Params("id"), req.Decision); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"decision": req.Decision}})
}

// IssueWarning POST /landlord/tenants/:id/warnings.
func (h *TenantsHandler) IssueWarning(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.WarningRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := h.service.IssueWarning(c.Context(), principal, c.Params("id"), req.Message); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": fiber.Map{"issued": true}})
}

// RateTenant POST /landlord/tenants/:id/rating.
func (h *TenantsHandler) RateTenant(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.RateTenantRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := h.service.RateTenant(c.Context(), principal, c.Params("id"), req.Rating); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"rating": req.Rating}})
}

// RateLandlord POST /tenant/landlords/:id/review.
func (h *TenantsHandler) RateLandlord(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.RateLandlordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := h.service.RateLandlord(c.Context(), principal, c.Params("id"), req.Rating, req.Comment); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": fiber.Map{"reviewed": true}})
}
