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

// TicketsHandler manages fault-ticket endpoints across all roles.
type TicketsHandler struct {
	service *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService) *TicketsHandler {
	return &TicketsHandler{service: ticketService}
}

// ReportFault POST /tickets.
func (h *TicketsHandler) ReportFault(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.ReportFaultRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	ticket, err := h.service.Report(c.Context(), principal, service.TicketReportInput{
		RoomID:      req.RoomID,
		Category:    req.Category,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": ticketResponse(ticket)})
}

// PlaceBid POST /tickets/:id/bids.
func (h *TicketsHandler) PlaceBid(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.PlaceBidRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	ticket, err := h.service.PlaceBid(c.Context(), principal, c.Params("id"), req.Amount, req.Notes)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": ticketResponse(ticket)})
}

// AcceptBid POST /tickets/:id/bids/accept.
func (h *TicketsHandler) AcceptBid(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.AcceptBidRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.BidID == "" {
		return apperrors.NewValidationError("bid_id required", nil)
	}
	ticket, err := h.service.AcceptBid(c.Context(), principal, c.Params("id"), req.BidID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketResponse(ticket)})
}

// MarkJobComplete POST /tickets/:id/complete.
func (h *TicketsHandler) MarkJobComplete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	ticket, err := h.service.MarkJobComplete(c.Context(), principal, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketResponse(ticket)})
}

// ConfirmResolution POST /tickets/:id/confirm.
func (h *TicketsHandler) ConfirmResolution(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	ticket, err := h.service.ConfirmResolution(c.Context(), principal, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketResponse(ticket)})
}

// ListOwnTickets GET /tickets. Tenants and trustees see the tenant's tickets.
func (h *TicketsHandler) ListOwnTickets(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	limit, offset := pagination(c)
	tickets, err := h.service.ListForTenant(c.Context(), principal, limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketResponses(tickets)})
}

// ListLandlordTickets GET /landlord/tickets.
func (h *TicketsHandler) ListLandlordTickets(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var statuses []domain.TicketStatus
	if statusStr := c.Query("status"); statusStr != "" {
		for _, part := range strings.Split(statusStr, ",") {
			statuses = append(statuses, domain.TicketStatus(strings.TrimSpace(part)))
		}
	}
	limit, offset := pagination(c)
	tickets, err := h.service.ListForLandlord(c.Context(), principal, statuses, limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketResponses(tickets)})
}

// ListOpenTickets GET /provider/tickets/open.
func (h *TicketsHandler) ListOpenTickets(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	limit, offset := pagination(c)
	tickets, err := h.service.ListOpenForProvider(c.Context(), principal, limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketResponses(tickets)})
}

// ListProviderJobs GET /provider/tickets/jobs.
func (h *TicketsHandler) ListProviderJobs(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	limit, offset := pagination(c)
	tickets, err := h.service.ListJobsForProvider(c.Context(), principal, limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketResponses(tickets)})
}

func ticketResponse(ticket *domain.FaultTicket) dto.TicketResponse {
	bids := make([]dto.JobBidResponse, 0, len(ticket.Bids))
	for _, bid := range ticket.Bids {
		bids = append(bids, dto.JobBidResponse{
			ID:                  bid.ID,
			ServiceProviderID:   bid.ServiceProviderID,
			ServiceProviderName: bid.ServiceProviderName,
			Amount:              bid.Amount,
			Notes:               bid.Notes,
		})
	}
	return dto.TicketResponse{
		ID:                        ticket.ID,
		RoomID:                    ticket.RoomID,
		TenantID:                  ticket.TenantID,
		LandlordID:                ticket.LandlordID,
		Description:               ticket.Description,
		Category:                  ticket.Category,
		Status:                    ticket.Status,
		ReportedAt:                ticket.ReportedAt,
		Bids:                      bids,
		AcceptedBidID:             ticket.AcceptedBidID,
		TenantConfirmedResolved:   ticket.TenantConfirmedResolved,
		LandlordConfirmedResolved: ticket.LandlordConfirmedResolved,
		CreatedAt:                 ticket.CreatedAt,
		UpdatedAt:                 ticket.UpdatedAt,
	}
}

func ticketResponses(tickets []domain.FaultTicket) []dto.TicketResponse {
	items := make([]dto.TicketResponse, 0, len(tickets))
	for i := range tickets {
		items = append(items, ticketResponse(&tickets[i]))
	}
	return items
}
