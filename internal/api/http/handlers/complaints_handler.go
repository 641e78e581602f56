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

// ComplaintsHandler manages complaint endpoints.
type ComplaintsHandler struct {
	service *service.ComplaintService
}

// NewComplaintsHandler constructs handler.
func NewComplaintsHandler(complaintService *service.ComplaintService) *ComplaintsHandler {
	return &ComplaintsHandler{service: complaintService}
}

// FileComplaint POST /complaints.
func (h *ComplaintsHandler) FileComplaint(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.FileComplaintRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	complaint, err := h.service.File(c.Context(), principal, req.Against, req.Reason)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": complaintResponse(complaint)})
}

// ListFiledComplaints GET /complaints/filed.
func (h *ComplaintsHandler) ListFiledComplaints(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	complaints, err := h.service.ListFiled(c.Context(), principal)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": complaintResponses(complaints)})
}

// ListComplaintsAgainst GET /complaints/against.
func (h *ComplaintsHandler) ListComplaintsAgainst(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	complaints, err := h.service.ListAgainst(c.Context(), principal)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": complaintResponses(complaints)})
}

func complaintResponse(complaint *domain.Complaint) dto.ComplaintResponse {
	return dto.ComplaintResponse{
		ID:           complaint.ID,
		FiledByID:    complaint.FiledByID,
		FiledAgainst: complaint.FiledAgainst,
		Reason:       complaint.Reason,
		Status:       complaint.Status,
		Date:         complaint.Date,
	}
}

func complaintResponses(complaints []domain.Complaint) []dto.ComplaintResponse {
	items := make([]dto.ComplaintResponse, 0, len(complaints))
	for i := range complaints {
		items = append(items, complaintResponse(&complaints[i]))
	}
	return items
}
