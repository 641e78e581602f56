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

// AnnouncementsHandler manages announcement endpoints.
type AnnouncementsHandler struct {
	service *service.AnnouncementService
}

// NewAnnouncementsHandler constructs handler.
func NewAnnouncementsHandler(announcementService *service.AnnouncementService) *AnnouncementsHandler {
	return &AnnouncementsHandler{service: announcementService}
}

// Publish POST /announcements.
func (h *AnnouncementsHandler) Publish(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.PublishAnnouncementRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	announcement, err := h.service.Publish(c.Context(), principal, req.Title, req.Content)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": announcementResponse(announcement)})
}

// List GET /announcements.
func (h *AnnouncementsHandler) List(c *fiber.Ctx) error {
	limit, offset := pagination(c)
	announcements, err := h.service.List(c.Context(), limit, offset)
	if err != nil {
		return err
	}
	items := make([]dto.AnnouncementResponse, 0, len(announcements))
	for i := range announcements {
		items = append(items, announcementResponse(&announcements[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

func announcementResponse(announcement *domain.Announcement) dto.AnnouncementResponse {
	return dto.AnnouncementResponse{
		ID:      announcement.ID,
		Author:  announcement.Author,
		Title:   announcement.Title,
		Content: announcement.Content,
		Date:    announcement.Date,
	}
}
