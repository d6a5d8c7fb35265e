package routes

import (
	"time"

	"credit-admin/internal/adapters/http/handlers"
	"credit-admin/internal/adapters/http/middleware"
	"credit-admin/internal/adapters/persistence/repositories"
	"credit-admin/internal/config"
	"credit-admin/internal/core/domain"
	"credit-admin/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
)

// Services are the collaborators the handlers call
type Services struct {
	Identity *services.IdentityStore
	Ledger   *services.LoanLedger
	Reports  *services.ReportService
	Sessions repositories.SessionRepository
}

// Setup configures all routes for the application
func Setup(app *fiber.App, svc *Services, cfg *config.Config) {
	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(cfg, svc.Sessions)
	authHandler := handlers.NewAuthHandler(svc.Identity, cfg)
	userHandler := handlers.NewUserHandler(svc.Identity)
	loanHandler := handlers.NewLoanHandler(svc.Ledger, svc.Reports)
	dashboardHandler := handlers.NewDashboardHandler(svc.Ledger)
	masterHandler := handlers.NewMasterHandler()

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API v1 group
	apiV1 := app.Group("/api/v1", middleware.NoCache())
	apiV1.Get("/", healthHandler.APIInfo)

	auth := middleware.AuthMiddleware(cfg, svc.Identity)
	signedIn := middleware.RequireSession()

	// Auth routes
	authRoutes := apiV1.Group("/auth")
	authRoutes.Post("/login", middleware.AuthRateLimiter(cfg.Limits.Login), authHandler.Login)
	authRoutes.Post("/logout", auth, authHandler.Logout)
	authRoutes.Get("/me", auth, signedIn, authHandler.Me)

	// Roster management (admin only)
	users := apiV1.Group("/users", auth, middleware.AdminOnly())
	users.Get("/", userHandler.ListUsers)
	users.Post("/", userHandler.CreateUser)
	users.Get("/:id", userHandler.GetUser)
	users.Put("/:id", userHandler.UpdateUser)
	users.Delete("/:id", userHandler.DeleteUser)

	apiV1.Put("/profile", auth, signedIn, userHandler.UpdateProfile)

	// Loans
	loans := apiV1.Group("/loans", auth, signedIn)
	loans.Get("/", loanHandler.ListLoans)
	loans.Post("/", loanHandler.ApplyLoan)
	loans.Get("/export", middleware.RequireCapability(domain.CapViewReports), loanHandler.ExportLoans)
	loans.Get("/:id", loanHandler.GetLoan)
	loans.Put("/:id/verify", middleware.ReviewerOrAdmin(), loanHandler.VerifyLoan)
	loans.Put("/:id/reject", middleware.RequireCapability(domain.CapReject), loanHandler.RejectLoan)
	loans.Put("/:id/approve", middleware.RequireCapability(domain.CapApprove), loanHandler.ApproveLoan)

	// Reference data
	master := apiV1.Group("/master", middleware.CacheControl(10*time.Minute))
	master.Get("/loan-purposes", masterHandler.ListLoanPurposes)
	master.Get("/loan-statuses", masterHandler.ListLoanStatuses)
	master.Get("/roles", masterHandler.ListRoles)

	// Dashboard & navigation
	apiV1.Get("/dashboard", auth, signedIn, dashboardHandler.GetStats)
	apiV1.Get("/navigation", auth, signedIn, dashboardHandler.GetNavigation)
	apiV1.Get("/views/:view", middleware.OptionalAuth(cfg, svc.Identity), dashboardHandler.EvaluateView)
}
