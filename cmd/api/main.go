package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/gzip"
	_ "github.com/joho/godotenv/autoload"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/jasperjas06/live-sub000/docs" // Swagger docs
	"github.com/jasperjas06/live-sub000/internal/config"
	"github.com/jasperjas06/live-sub000/internal/database"
	"github.com/jasperjas06/live-sub000/internal/handlers"
	"github.com/jasperjas06/live-sub000/internal/jobs"
	"github.com/jasperjas06/live-sub000/internal/middleware"
	"github.com/jasperjas06/live-sub000/internal/models"
	"github.com/jasperjas06/live-sub000/internal/repository"
	"github.com/jasperjas06/live-sub000/internal/services"
	"github.com/jasperjas06/live-sub000/internal/storage"
	"github.com/jasperjas06/live-sub000/pkg/logger"

	"github.com/gin-gonic/gin"
)

// @title Live Sub API
// @version 1.0
// @description REST API for the Live Sub real estate sales and billing back office

// @host localhost:8080
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Setup(cfg.Environment)

	// Initialize Sentry when DSN is configured
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			TracesSampleRate: 0.2,
			Environment:      cfg.Environment,
		}); err != nil {
			logger.Error("Sentry initialization failed", "error", err)
		} else {
			logger.Info("Sentry initialized")
		}
	}

	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	logger.Info("Connected to database")

	if err := database.Migrate(db); err != nil {
		logger.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Initialize storage
	store, err := storage.NewLocalStorage(cfg.StoragePath)
	if err != nil {
		logger.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	logger.Info("Initialized local storage")

	// Initialize repositories
	repos := repository.NewRepositories(db)

	// Initialize background worker
	worker := jobs.NewWorker(cfg.WorkerCount)
	logger.Info("Started background worker", "goroutines", cfg.WorkerCount)

	// Initialize services
	svcs := services.NewServices(repos, worker, store, cfg, db)

	// Schedule recurring jobs
	scheduleJobs(worker, svcs, repos)

	// Initialize handlers
	h := handlers.NewHandlers(svcs, repos, worker)

	// Setup router
	router := setupRouter(h, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	worker.Shutdown()
	logger.Info("Background worker stopped")

	if cfg.SentryDSN != "" {
		sentry.Flush(5 * time.Second)
	}

	logger.Info("Server exited gracefully")
}

func setupRouter(h *handlers.Handlers, cfg *config.Config) *gin.Engine {
	router := gin.New()

	// Global middleware
	if cfg.SentryDSN != "" {
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Redirect root to swagger
		router.GET("/", func(c *gin.Context) {
			c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
		})

		// Swagger documentation
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

		// Health check (public)
		v1.GET("/health", h.Health.Check)

		// Authentication (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.Refresh)
			auth.POST("/recover", h.Auth.Recover)
			auth.POST("/reset_password", h.Auth.ResetPassword)
		}

		// Protected routes (requires authentication)
		protected := v1.Group("")
		protected.Use(middleware.Auth(cfg.JWTSecret))
		{
			protected.POST("/auth/logout", h.Auth.Logout)
			protected.GET("/auth/me", h.Auth.Me)

			// Admin-only routes
			admin := protected.Group("")
			admin.Use(middleware.RequireAdmin())
			{
				// User management
				admin.GET("/users", h.User.Index)
				admin.POST("/users", h.User.Create)
				admin.GET("/users/:id", h.User.Show)
				admin.PUT("/users/:id", h.User.Update)
				admin.DELETE("/users/:id", h.User.Destroy)
				admin.POST("/users/:id/restore", h.User.Restore)

				// Billing approval workflow
				admin.POST("/billing/:id/approve", h.Billing.Approve)
				admin.POST("/billing/:id/block", h.Billing.Block)

				// Sale lifecycle decisions
				admin.POST("/sales/:id/block", h.Sale.Block)
				admin.POST("/sales/:id/complete", h.Sale.Complete)

				// Customer restore
				admin.POST("/customers/:id/restore", h.Customer.Restore)

				// Edit request decisions
				admin.POST("/edit-requests/:id/approve", h.EditRequest.Approve)
				admin.POST("/edit-requests/:id/reject", h.EditRequest.Reject)

				// Catalogue management
				admin.POST("/projects", h.Project.Create)
				admin.PUT("/projects/:id", h.Project.Update)
				admin.POST("/marketers", h.Marketer.Create)
				admin.PUT("/marketers/:id", h.Marketer.Update)
				admin.POST("/directors", h.Director.Create)
				admin.PUT("/directors/:id", h.Director.Update)

				// Commission statements
				admin.GET("/commissions", h.Commission.Index)
				admin.GET("/commissions/marketers/:id", h.Commission.MarketerStatement)
				admin.GET("/commissions/directors/:id", h.Commission.DirectorStatement)

				// Audit trail
				admin.GET("/audit-logs", h.Audit.Index)
			}

			// Password self-service
			protected.PUT("/users/password", h.User.ChangePassword)

			// Customers
			protected.GET("/customers", h.Customer.Index)
			protected.GET("/customers/export", h.Customer.Export)
			protected.GET("/customers/:id", h.Customer.Show)
			protected.POST("/customers", h.Customer.Create)
			protected.PUT("/customers/:id", h.Customer.Update)
			protected.DELETE("/customers/:id", h.Customer.Destroy)

			// Sales
			protected.GET("/sales", h.Sale.Index)
			protected.GET("/sales/export", h.Sale.Export)
			protected.GET("/sales/:id", h.Sale.Show)
			protected.POST("/sales", h.Sale.Create)
			protected.PUT("/sales/:id", h.Sale.Update)

			// Billing
			protected.GET("/billing", h.Billing.Index)
			protected.GET("/billing/export", h.Billing.Export)
			protected.GET("/billing/stats", h.Billing.Stats)
			protected.GET("/billing/:id", h.Billing.Show)
			protected.POST("/billing", h.Billing.Create)
			protected.POST("/billing/:id/receipt", h.Billing.UploadReceipt)
			protected.GET("/billing/:id/receipt", h.Billing.DownloadReceipt)
			protected.GET("/billing/:id/receipt.pdf", h.Billing.ReceiptPDF)

			// MOD records
			protected.GET("/mod-records", h.MOD.Index)
			protected.GET("/mod-records/export", h.MOD.Export)
			protected.GET("/mod-records/:id", h.MOD.Show)
			protected.POST("/mod-records", h.MOD.Create)
			protected.PUT("/mod-records/:id", h.MOD.Update)

			// Catalogue viewing
			protected.GET("/projects", h.Project.Index)
			protected.GET("/projects/:id", h.Project.Show)
			protected.GET("/marketers", h.Marketer.Index)
			protected.GET("/directors", h.Director.Index)

			// Edit requests
			protected.GET("/edit-requests", h.EditRequest.Index)
			protected.GET("/edit-requests/:id", h.EditRequest.Show)
			protected.POST("/edit-requests", h.EditRequest.Submit)

			// Reports
			protected.GET("/reports/customers/:id/statement", h.Report.CustomerStatement)
			protected.GET("/reports/customers/:id/balance", h.Report.CustomerBalance)

			// Notifications
			// Static route first so "read-all" is not matched as :id
			notifications := protected.Group("/notifications")
			{
				notifications.GET("", h.Notification.Index)
				notifications.POST("/read-all", h.Notification.MarkAllRead)
				notifications.POST("/:id/read", h.Notification.MarkRead)
				notifications.DELETE("/:id", h.Notification.Destroy)
			}
		}
	}

	return router
}

func scheduleJobs(worker *jobs.Worker, svcs *services.Services, repos *repository.Repositories) {
	// Scan for overdue installments every hour and alert admins
	worker.ScheduleEvery(1*time.Hour, func(ctx context.Context) error {
		logger.Info("[Job] Checking overdue installments...")
		overdue, err := repos.Installment.FindOverdue(ctx)
		if err != nil {
			return err
		}
		if len(overdue) == 0 {
			return nil
		}
		return svcs.Notification.NotifyAdmins(ctx,
			"Overdue EMI installments",
			"There are unpaid installments past their due date. Review the billing screen.",
			models.NotificationTypeEMIOverdue,
		)
	})

	// Drop expired refresh tokens daily
	worker.ScheduleEvery(24*time.Hour, func(ctx context.Context) error {
		logger.Info("[Job] Purging expired refresh tokens...")
		return repos.RefreshToken.DeleteExpired(ctx)
	})

	logger.Info("Scheduled recurring jobs")
}
