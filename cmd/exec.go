package cmd

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/plugins/migratecmd"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"hms/config"
	"hms/internal/handlers"
	"hms/internal/repo"
	"hms/internal/services"
	"hms/monitoring"
	"hms/security"
	"hms/utils"
)

func Start() error {
	app := pocketbase.New()

	// Load configuration
	cfg := config.LoadConfig()

	// Initialize Redis
	redisClient := utils.NewRedisClient(cfg.RedisURL)
	defer redisClient.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Monitoring, stopped on shutdown via ctx
	monitor := monitoring.NewMonitor(ctx, redisClient)

	// Repositories
	events := repo.NewEvents(app)
	registrations := repo.NewRegistrations(app)

	// Services
	notifier := services.NewNotifyService(cfg.PubNubPublishKey, cfg.PubNubSubscribeKey, cfg.PubNubSecretKey)
	draftService := services.NewDraftService(redisClient, cfg.DraftTTL, monitor)
	registrationService := services.NewRegistrationService(
		events, registrations, draftService, monitor,
		cfg.AllowedEmailDomain, cfg.MaxUploadBytes, cfg.ImageMaxWidth, cfg.ImageJPEGQuality,
	)
	ticketService := services.NewTicketService(registrations)
	checkinService := services.NewCheckinService(registrations, ticketService, notifier, monitor)
	reportService := services.NewReportService(events, registrations)

	// Security
	guard := security.NewAdminGuard(cfg.AdminKey, cfg.AdminKeyHash)
	limiter := security.NewRateLimiter(redisClient)

	// Handlers
	eventHandler := handlers.NewEventHandler(events, monitor, cfg.MaxUploadBytes, cfg.ImageMaxWidth, cfg.ImageJPEGQuality, cfg.DefaultMaxMembers)
	registrationHandler := handlers.NewRegistrationHandler(registrationService, cfg.MaxUploadBytes)
	draftHandler := handlers.NewDraftHandler(draftService)
	checkinHandler := handlers.NewCheckinHandler(checkinService)
	ticketHandler := handlers.NewTicketHandler(ticketService)
	adminHandler := handlers.NewAdminHandler(guard, registrations, reportService)

	// Enable migrations
	migratecmd.MustRegister(app, app.RootCmd, migratecmd.Config{
		Automigrate: true,
	})

	// Metrics listener
	if cfg.EnableMetrics {
		go serveMetrics(cfg.MetricsPort)
	}

	// Setup graceful shutdown
	go handleShutdown(cancel)

	app.OnServe().BindFunc(func(e *core.ServeEvent) error {
		// Public endpoints
		e.Router.GET("/api/v1/events", eventHandler.List)
		e.Router.GET("/api/v1/events/{id}", eventHandler.Get)

		// Registration wizard
		e.Router.POST("/api/v1/registrations", registrationHandler.Submit)
		e.Router.GET("/api/v1/drafts/{key}", draftHandler.Get)
		e.Router.PUT("/api/v1/drafts/{key}", draftHandler.Put)
		e.Router.DELETE("/api/v1/drafts/{key}", draftHandler.Delete)

		// Tickets and check-in
		e.Router.GET("/api/v1/registrations/{id}/members/{memberId}/ticket", ticketHandler.Render)
		e.Router.POST("/api/v1/checkin/scan",
			limiter.Limit("scan", cfg.ScanRateLimit, cfg.RateWindow, checkinHandler.Scan))

		// Admin endpoints
		e.Router.POST("/api/v1/admin/login",
			limiter.Limit("login", cfg.LoginRateLimit, cfg.RateWindow, adminHandler.Login))
		e.Router.POST("/api/v1/admin/events", guard.Require(eventHandler.Create))
		e.Router.PATCH("/api/v1/admin/events/{id}", guard.Require(eventHandler.Update))
		e.Router.POST("/api/v1/admin/events/{id}/toggle", guard.Require(eventHandler.Toggle))
		e.Router.DELETE("/api/v1/admin/events/{id}", guard.Require(eventHandler.Delete))
		e.Router.GET("/api/v1/admin/events/{id}/registrations", guard.Require(adminHandler.ListByEvent))
		e.Router.GET("/api/v1/admin/events/{id}/stats", guard.Require(adminHandler.Stats))
		e.Router.GET("/api/v1/admin/events/{id}/export", guard.Require(adminHandler.ExportEvent))
		e.Router.GET("/api/v1/admin/attendance/export", guard.Require(adminHandler.ExportAttendance))
		e.Router.POST("/api/v1/admin/registrations/{id}/approve", guard.Require(adminHandler.Approve))
		e.Router.POST("/api/v1/admin/registrations/{id}/reject", guard.Require(adminHandler.Reject))

		// Test endpoint for inspecting scanned payloads without marking
		if cfg.Environment == "development" {
			e.Router.POST("/api/v1/test/decode-ticket", func(e *core.RequestEvent) error {
				var req struct {
					Payload string `json:"payload"`
				}
				if err := e.BindBody(&req); err != nil {
					return e.JSON(400, map[string]string{"error": "invalid request"})
				}
				claim, err := ticketService.Decode(req.Payload)
				if err != nil {
					return e.JSON(400, map[string]string{"error": err.Error()})
				}
				return e.JSON(200, claim)
			})
		}

		// Health check
		e.Router.GET("/health", func(e *core.RequestEvent) error {
			if err := utils.RedisHealthCheck(redisClient); err != nil {
				return e.JSON(503, map[string]string{
					"status": "unhealthy",
					"error":  err.Error(),
				})
			}
			return e.JSON(200, map[string]string{"status": "healthy"})
		})

		log.Println("Server routes registered")

		// Forward committed record changes to connected stations.
		repo.Subscribe(app, []string{"events", "registrations", "members"}, notifier.PublishChange)

		return e.Next()
	})

	// Start server
	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
	return nil
}

func serveMetrics(port string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	log.Printf("Metrics listening on :%s", port)
	if err := http.ListenAndServe(":"+port, mux); err != nil {
		slog.Error("metrics listener stopped", "error", err)
	}
}

// handleShutdown handles graceful shutdown
func handleShutdown(cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Println("Shutdown signal received, cleaning up...")
	cancel()
}
