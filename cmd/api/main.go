package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/brokerage-crm/internal/api/http"
	"github.com/spec-kit/brokerage-crm/internal/api/http/handlers"
	"github.com/spec-kit/brokerage-crm/internal/auth"
	"github.com/spec-kit/brokerage-crm/internal/config"
	"github.com/spec-kit/brokerage-crm/internal/events"
	"github.com/spec-kit/brokerage-crm/internal/observability"
	"github.com/spec-kit/brokerage-crm/internal/persistence"
	"github.com/spec-kit/brokerage-crm/internal/repository"
	"github.com/spec-kit/brokerage-crm/internal/scoring"
	"github.com/spec-kit/brokerage-crm/internal/service"
	"github.com/spec-kit/brokerage-crm/internal/worker"
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
	leadRepo := repository.NewLeadRepository(pool)
	staffRepo := repository.NewStaffRepository(pool)
	noteRepo := repository.NewNoteRepository(pool)
	notificationRepo := repository.NewNotificationRepository(pool)
	appointmentRepo := repository.NewAppointmentRepository(pool)
	vehicleRepo := repository.NewVehicleRepository(pool)
	batchRepo := repository.NewStageBatchRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	metrics := observability.NewMetrics()

	noteService := service.NewNoteService(noteRepo)
	notifierService := service.NewNotifierService(notificationRepo, staffRepo, redis.ClientHandle(), logger)

	leadService := service.NewLeadService(service.LeadDependencies{
		LeadRepo:    leadRepo,
		StaffRepo:   staffRepo,
		VehicleRepo: vehicleRepo,
		Notes:       noteService,
		Notifier:    notifierService,
		Dispatcher:  dispatcher,
	})
	pipelineService := service.NewPipelineService(service.PipelineDependencies{
		LeadRepo:   leadRepo,
		StaffRepo:  staffRepo,
		BatchRepo:  batchRepo,
		Notes:      noteService,
		Notifier:   notifierService,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	scoringService := service.NewScoringService(service.ScoringDependencies{
		Collaborator: scoring.NewClient(cfg.Scoring, logger),
		LeadReader:   leadService,
		NoteReader:   noteService,
		Notes:        noteService,
		Dispatcher:   dispatcher,
		Logger:       logger,
	})
	appointmentService := service.NewAppointmentService(appointmentRepo, leadService, noteService, dispatcher)
	inventoryService := service.NewInventoryService(vehicleRepo)
	authService := service.NewAuthService(*cfg, staffRepo)
	staffService := service.NewStaffService(staffRepo, logger, cfg.Auth.BcryptCost)
	outboundService := service.NewOutboundService(dispatcher, logger, cfg.Notification)

	worker.StartOutboundWorker(outboundService)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), staffRepo)

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Leads:          handlers.NewLeadsHandler(leadService, pipelineService, noteService),
		Appointments:   handlers.NewAppointmentsHandler(appointmentService),
		Inventory:      handlers.NewInventoryHandler(inventoryService),
		Notifications:  handlers.NewNotificationsHandler(notifierService),
		Scoring:        handlers.NewScoringHandler(scoringService),
		Staff:          handlers.NewStaffHandler(staffService),
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
