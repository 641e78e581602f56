package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/getaroom/rental-service/internal/api/http"
	"github.com/getaroom/rental-service/internal/api/http/handlers"
	"github.com/getaroom/rental-service/internal/auth"
	"github.com/getaroom/rental-service/internal/config"
	"github.com/getaroom/rental-service/internal/events"
	"github.com/getaroom/rental-service/internal/observability"
	"github.com/getaroom/rental-service/internal/persistence"
	"github.com/getaroom/rental-service/internal/repository"
	"github.com/getaroom/rental-service/internal/service"
	"github.com/getaroom/rental-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	tenantRepo := repository.NewTenantRepository(pool)
	landlordRepo := repository.NewLandlordRepository(pool)
	providerRepo := repository.NewServiceProviderRepository(pool)
	roomRepo := repository.NewRoomRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	ticketRepo := repository.NewTicketRepository(pool)
	complaintRepo := repository.NewComplaintRepository(pool)
	announcementRepo := repository.NewAnnouncementRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		TenantRepo:   tenantRepo,
		LandlordRepo: landlordRepo,
		ProviderRepo: providerRepo,
	})
	bookingService := service.NewBookingService(service.BookingDependencies{
		BookingRepo: bookingRepo,
		RoomRepo:    roomRepo,
		TenantRepo:  tenantRepo,
		Dispatcher:  dispatcher,
	})
	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo: ticketRepo,
		RoomRepo:   roomRepo,
		Dispatcher: dispatcher,
	})
	complaintService := service.NewComplaintService(complaintRepo, dispatcher)
	tenantService := service.NewTenantService(service.TenantDependencies{
		TenantRepo:   tenantRepo,
		LandlordRepo: landlordRepo,
		Dispatcher:   dispatcher,
	})
	roomService := service.NewRoomService(roomRepo, landlordRepo)
	accessService := service.NewAccessService(redis.Client)
	announcementService := service.NewAnnouncementService(announcementRepo)
	conciergeService, err := service.NewConciergeService(ctx, cfg.GenAI)
	if err != nil {
		logger.Fatal("failed to init concierge", zap.Error(err))
	}

	notificationService := service.NewNotificationService(cfg.Notification, logger)
	worker.StartNotificationWorker(dispatcher, notificationService, logger)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), tenantRepo, landlordRepo, providerRepo)

	metrics := observability.NewMetrics()
	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Accounts:       handlers.NewAccountsHandler(authService),
		Rooms:          handlers.NewRoomsHandler(roomService),
		Bookings:       handlers.NewBookingsHandler(bookingService),
		Tickets:        handlers.NewTicketsHandler(ticketService),
		Complaints:     handlers.NewComplaintsHandler(complaintService),
		Tenants:        handlers.NewTenantsHandler(tenantService),
		Announcements:  handlers.NewAnnouncementsHandler(announcementService),
		Access:         handlers.NewAccessHandler(accessService),
		Concierge:      handlers.NewConciergeHandler(conciergeService, roomService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
