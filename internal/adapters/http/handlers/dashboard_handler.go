package handlers

import (
	"credit-admin/internal/adapters/http/middleware"
	"credit-admin/internal/core/guard"
	"credit-admin/internal/core/services"
	"credit-admin/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DashboardHandler handles dashboard and navigation endpoints
type DashboardHandler struct {
	ledger *services.LoanLedger
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(ledger *services.LoanLedger) *DashboardHandler {
	return &DashboardHandler{ledger: ledger}
}

// GetStats returns the dashboard aggregate
// @Summary Dashboard stats
// @Description Totals and trailing 12 month series derived from the ledger
// @Tags Dashboard
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /dashboard [get]
func (h *DashboardHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.ledger.Stats(c.UserContext())
	if err != nil {
		return writeError(c, err, "Failed to load dashboard")
	}

	return response.Success(c, "Dashboard retrieved successfully", stats)
}

// GetNavigation lists the views the session user may open
// @Summary Navigation
// @Tags Dashboard
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /navigation [get]
func (h *DashboardHandler) GetNavigation(c *fiber.Ctx) error {
	return response.Success(c, "Navigation retrieved successfully", guard.Navigation(middleware.CurrentUser(c)))
}

// EvaluateView returns the guard decision for one view
// @Summary Evaluate view access
// @Description allow, or unauthenticated/forbidden with the redirect target
// @Tags Dashboard
// @Accept json
// @Produce json
// @Param view path string true "View name"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /views/{view} [get]
func (h *DashboardHandler) EvaluateView(c *fiber.Ctx) error {
	view, ok := guard.FindView(c.Params("view"))
	if !ok {
		return response.NotFound(c, "View not found")
	}

	decision := guard.EvaluateView(middleware.CurrentUser(c), view)
	return response.Success(c, "View evaluated", fiber.Map{
		"view":     view,
		"decision": decision,
	})
}
