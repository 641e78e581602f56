package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/getaroom/rental-service/internal/api/dto"
	"github.com/getaroom/rental-service/internal/auth"
	"github.com/getaroom/rental-service/internal/domain"
	"github.com/getaroom/rental-service/internal/service"
	apperrors "github.com/getaroom/rental-service/pkg/util"
)

// AccountsHandler covers registration, login and password management.
type AccountsHandler struct {
	service *service.AuthService
}

// NewAccountsHandler constructs handler.
func NewAccountsHandler(authService *service.AuthService) *AccountsHandler {
	return &AccountsHandler{service: authService}
}

// RegisterTenant POST /auth/tenants/register.
func (h *AccountsHandler) RegisterTenant(c *fiber.Ctx) error {
	var req dto.RegisterTenantRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("name, email, password required", nil)
	}
	session, err := h.service.RegisterTenant(c.Context(), req.Name, req.Email, req.Password, req.Kind)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": sessionResponse(session)})
}

// RegisterLandlord POST /auth/landlords/register.
func (h *AccountsHandler) RegisterLandlord(c *fiber.Ctx) error {
	var req dto.RegisterLandlordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("name, email, password required", nil)
	}
	session, err := h.service.RegisterLandlord(c.Context(), req.Name, req.Email, req.Password, req.PropertyTypes)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": sessionResponse(session)})
}

// RegisterProvider POST /auth/providers/register.
func (h *AccountsHandler) RegisterProvider(c *fiber.Ctx) error {
	var req dto.RegisterProviderRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("name, email, password required", nil)
	}
	session, err := h.service.RegisterServiceProvider(c.Context(), req.Name, req.Email, req.Password, req.Services)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": sessionResponse(session)})
}

// Login POST /auth/login.
func (h *AccountsHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required", nil)
	}
	session, err := h.service.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": sessionResponse(session)})
}

// LoginTrustee POST /auth/trustees/login.
func (h *AccountsHandler) LoginTrustee(c *fiber.Ctx) error {
	var req dto.TrusteeLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	session, err := h.service.LoginTrustee(c.Context(), req.Email)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": sessionResponse(session)})
}

// ChangePassword POST /auth/password/change.
func (h *AccountsHandler) ChangePassword(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		return apperrors.NewValidationError("current_password and new_password required", nil)
	}
	if err := h.service.ChangePassword(c.Context(), principal, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"changed": true}})
}

// Me GET /me returns the caller's profile in its role-specific shape.
func (h *AccountsHandler) Me(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	switch principal.Role {
	case domain.RoleTenant:
		return c.JSON(fiber.Map{"data": tenantProfile(principal.Tenant)})
	case domain.RoleLandlord:
		return c.JSON(fiber.Map{"data": landlordProfile(principal.Landlord)})
	case domain.RoleServiceProvider:
		return c.JSON(fiber.Map{"data": providerProfile(principal.Provider)})
	case domain.RoleTrustee:
		trustee := principal.Trustee
		return c.JSON(fiber.Map{"data": fiber.Map{
			"id":    trustee.ID,
			"name":  trustee.Name,
			"email": trustee.Email,
			"tenant_in_trust": fiber.Map{
				"id":             trustee.TenantInTrust.ID,
				"name":           trustee.TenantInTrust.Name,
				"leased_room_id": trustee.TenantInTrust.LeasedRoomID,
			},
		}})
	}
	return apperrors.NewUnauthorized("unknown role")
}

func sessionResponse(session *service.Session) dto.SessionResponse {
	return dto.SessionResponse{
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
		Role:      session.Principal.Role,
		ID:        session.Principal.ID(),
		Name:      session.Principal.Name(),
	}
}

func tenantProfile(tenant *domain.Tenant) dto.TenantProfileResponse {
	trustees := make([]dto.TrusteeGrantResponse, 0, len(tenant.Trustees))
	for _, grant := range tenant.Trustees {
		trustees = append(trustees, dto.TrusteeGrantResponse{ID: grant.ID, Name: grant.Name, Email: grant.Email})
	}
	return dto.TenantProfileResponse{
		ID:             tenant.ID,
		Name:           tenant.Name,
		Email:          tenant.Email,
		Kind:           tenant.Kind,
		LeasedRoomID:   tenant.LeasedRoomID,
		LeaseStartDate: tenant.LeaseStartDate,
		LeaseEndDate:   tenant.LeaseEndDate,
		RentAmount:     tenant.RentAmount,
		RentDueDate:    tenant.RentDueDate,
		RentStatus:     tenant.RentStatus,
		Warnings:       tenant.Warnings,
		LeaseExtension: tenant.LeaseExtension,
		Trustees:       trustees,
		BookingHistory: tenant.BookingHistory,
		Rating:         tenant.Rating,
	}
}

func landlordProfile(landlord *domain.Landlord) dto.LandlordProfileResponse {
	return dto.LandlordProfileResponse{
		ID:                landlord.ID,
		Name:              landlord.Name,
		Email:             landlord.Email,
		PropertyTypes:     landlord.PropertyTypes,
		ManagedProperties: landlord.ManagedProperties,
		Reviews:           landlord.Reviews,
	}
}

func providerProfile(provider *domain.ServiceProvider) dto.ProviderProfileResponse {
	return dto.ProviderProfileResponse{
		ID:            provider.ID,
		Name:          provider.Name,
		Email:         provider.Email,
		Services:      provider.Services,
		AverageRating: provider.AverageRating,
		Feedback:      provider.Feedback,
	}
}
