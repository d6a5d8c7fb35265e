package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"credit-admin/internal/adapters/http/middleware"
	"credit-admin/internal/adapters/http/routes"
	"credit-admin/internal/adapters/persistence/kv"
	"credit-admin/internal/adapters/persistence/models"
	"credit-admin/internal/adapters/persistence/repositories"
	"credit-admin/internal/config"
	"credit-admin/internal/core/services"

	"github.com/gofiber/fiber/v2"

	_ "credit-admin/docs" // Swagger docs
)

// @title Credit Admin API
// @version 1.0
// @description Role-gated loan administration: sign in, submit applications, verify, approve or reject them.

// @host localhost:3000
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	// Session persistence
	store, closeStore, err := openSessionStore(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to open session store: %v", err)
	}
	defer closeStore()
	sessions := repositories.NewSessionRepository(store, cfg.Session.Key)

	// Notifications
	notifier := services.NewNotificationService(cfg.AMQP.URL, cfg.AMQP.Queue)
	if notifier.IsEnabled() {
		if err := notifier.Connect(); err != nil {
			log.Printf("⚠️ Warning: RabbitMQ unavailable, events will retry on publish: %v", err)
		}
		defer notifier.Close()
	}

	// Identity store and ledger
	var identityOpts []services.IdentityOption
	if cfg.IsStrictAuth() {
		identityOpts = append(identityOpts, services.WithCredentialVerifier(services.StrictCredentials{}))
	}
	identityOpts = append(identityOpts, services.WithIdentityLatency(cfg.Auth.Latency))
	identity := services.NewIdentityStore(repositories.NewUserRepository(), sessions, identityOpts...)

	ledger := services.NewLoanLedger(repositories.NewLoanRepository(), notifier, services.LedgerOptions{
		StrictTransitions: cfg.Ledger.StrictTransitions,
		EnforceRoles:      cfg.Ledger.EnforceRoles,
		SubmitLatency:     cfg.Ledger.SubmitLatency,
		ReviewLatency:     cfg.Ledger.ReviewLatency,
	})

	// Seed mock data
	if err := config.NewSeeder(cfg, identity, ledger).Run(ctx); err != nil {
		log.Fatalf("❌ Failed to seed data: %v", err)
	}

	// Restore the persisted session
	if _, err := identity.Restore(ctx); err != nil {
		log.Printf("⚠️ Warning: Failed to restore session: %v", err)
	}

	// Start Cron Service for review reminders
	if cfg.Cron.Enabled {
		cronService := services.NewCronService(ledger, notifier, cfg.Cron.ReminderSpec)
		if err := cronService.Start(); err != nil {
			log.Fatalf("❌ Failed to start cron service: %v", err)
		}
		defer cronService.Stop()
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Credit Admin API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes
	routes.Setup(app, &routes.Services{
		Identity: identity,
		Ledger:   ledger,
		Reports:  services.NewReportService(ledger),
		Sessions: sessions,
	}, cfg)

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("🚀 Server starting on port %s [MODE: %s, SESSION: %s, AUTH: %s]",
		cfg.Port, cfg.AppMode, cfg.Session.Driver, cfg.Auth.Mode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// openSessionStore builds the key-value store selected by SESSION_DRIVER
func openSessionStore(cfg *config.Config) (kv.Store, func(), error) {
	switch cfg.Session.Driver {
	case config.SessionDriverRedis:
		client, err := config.ConnectRedis(cfg)
		if err != nil {
			return nil, nil, err
		}
		return kv.NewRedisStore(client, cfg.Session.Prefix), func() { _ = client.Close() }, nil

	case config.SessionDriverSQL:
		db, err := config.ConnectDatabase(cfg)
		if err != nil {
			return nil, nil, err
		}
		// Auto migrate (creates the session table if not exist)
		if err := models.AutoMigrate(db); err != nil {
			return nil, nil, err
		}
		log.Println("✅ Database migration completed")
		return kv.NewGormStore(db), func() { _ = config.CloseDatabase() }, nil
	}

	return kv.NewMemoryStore(), func() {}, nil
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("❌ Error during shutdown: %v", err)
	}
	log.Println("✅ Server stopped gracefully")
}
