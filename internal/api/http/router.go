package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/getaroom/rental-service/internal/api/http/handlers"
	"github.com/getaroom/rental-service/internal/auth"
	"github.com/getaroom/rental-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Accounts       *handlers.AccountsHandler
	Rooms          *handlers.RoomsHandler
	Bookings       *handlers.BookingsHandler
	Tickets        *handlers.TicketsHandler
	Complaints     *handlers.ComplaintsHandler
	Tenants        *handlers.TenantsHandler
	Announcements  *handlers.AnnouncementsHandler
	Access         *handlers.AccessHandler
	Concierge      *handlers.ConciergeHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/tenants/register", cfg.Accounts.RegisterTenant)
	authGroup.Post("/landlords/register", cfg.Accounts.RegisterLandlord)
	authGroup.Post("/providers/register", cfg.Accounts.RegisterProvider)
	authGroup.Post("/login", cfg.Accounts.Login)
	authGroup.Post("/trustees/login", cfg.Accounts.LoginTrustee)

	// Browse surface is public; everything else requires a principal.
	app.Get("/rooms", cfg.Rooms.SearchRooms)
	app.Get("/rooms/:id", cfg.Rooms.GetRoom)
	app.Get("/announcements", cfg.Announcements.List)

	protected := app.Group("", cfg.AuthMiddleware.Handle, auth.RequireAnyRole())
	protected.Post("/auth/password/change", cfg.Accounts.ChangePassword)
	protected.Get("/me", cfg.Accounts.Me)

	protected.Post("/complaints", cfg.Complaints.FileComplaint)
	protected.Get("/complaints/filed", cfg.Complaints.ListFiledComplaints)
	protected.Get("/complaints/against", cfg.Complaints.ListComplaintsAgainst)

	protected.Post("/rooms/:id/lock/toggle", cfg.Access.ToggleLock)
	protected.Get("/rooms/:id/lock", cfg.Access.LockState)
	protected.Get("/concierge/rooms/:id/welcome", cfg.Concierge.WelcomeMessage)
	protected.Post("/concierge/rooms/:id/nearby", cfg.Concierge.NearbyPlaces)

	tenantOnly := protected.Group("", auth.RequireRole(domain.RoleTenant))
	tenantOnly.Post("/bookings", cfg.Bookings.SubmitBooking)
	tenantOnly.Get("/bookings", cfg.Bookings.ListOwnBookings)
	tenantOnly.Post("/tenant/trustees", cfg.Tenants.AddTrustee)
	tenantOnly.Delete("/tenant/trustees/:id", cfg.Tenants.RemoveTrustee)
	tenantOnly.Post("/tenant/lease-extension", cfg.Tenants.RequestLeaseExtension)
	tenantOnly.Post("/tenant/landlords/:id/review", cfg.Tenants.RateLandlord)

	// Fault reporting and ticket reads are shared between tenants and trustees.
	tenantOrTrustee := protected.Group("", auth.RequireRole(domain.RoleTenant, domain.RoleTrustee))
	tenantOrTrustee.Post("/tickets", cfg.Tickets.ReportFault)
	tenantOrTrustee.Get("/tickets", cfg.Tickets.ListOwnTickets)

	tenantOrLandlord := protected.Group("", auth.RequireRole(domain.RoleTenant, domain.RoleLandlord))
	tenantOrLandlord.Post("/tickets/:id/confirm", cfg.Tickets.ConfirmResolution)

	landlordOnly := protected.Group("/landlord", auth.RequireRole(domain.RoleLandlord))
	landlordOnly.Get("/rooms", cfg.Rooms.ListOwnRooms)
	landlordOnly.Get("/bookings", cfg.Bookings.ListLandlordBookings)
	landlordOnly.Get("/tickets", cfg.Tickets.ListLandlordTickets)
	landlordOnly.Post("/tenants/:id/lease-extension/decision", cfg.Tenants.DecideLeaseExtension)
	landlordOnly.Post("/tenants/:id/warnings", cfg.Tenants.IssueWarning)
	landlordOnly.Post("/tenants/:id/rating", cfg.Tenants.RateTenant)

	landlordRoot := protected.Group("", auth.RequireRole(domain.RoleLandlord))
	landlordRoot.Post("/rooms", cfg.Rooms.CreateRoom)
	landlordRoot.Post("/bookings/:id/decision", cfg.Bookings.DecideBooking)
	landlordRoot.Post("/tickets/:id/bids/accept", cfg.Tickets.AcceptBid)
	landlordRoot.Post("/announcements", cfg.Announcements.Publish)

	providerOnly := protected.Group("/provider", auth.RequireRole(domain.RoleServiceProvider))
	providerOnly.Get("/tickets/open", cfg.Tickets.ListOpenTickets)
	providerOnly.Get("/tickets/jobs", cfg.Tickets.ListProviderJobs)

	providerRoot := protected.Group("", auth.RequireRole(domain.RoleServiceProvider))
	providerRoot.Post("/tickets/:id/bids", cfg.Tickets.PlaceBid)
	providerRoot.Post("/tickets/:id/complete", cfg.Tickets.MarkJobComplete)
}
