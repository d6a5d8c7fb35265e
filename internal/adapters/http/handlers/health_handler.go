package handlers

import (
	"context"
	"time"

	"credit-admin/internal/adapters/persistence/repositories"
	"credit-admin/internal/config"

	"github.com/gofiber/fiber/v2"
)

// HealthHandler handles health check endpoints
type HealthHandler struct {
	cfg      *config.Config
	sessions repositories.SessionRepository
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(cfg *config.Config, sessions repositories.SessionRepository) *HealthHandler {
	return &HealthHandler{cfg: cfg, sessions: sessions}
}

// Root handles the bare server root, outside the documented base path
func (h *HealthHandler) Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "running",
		"message": "🚀 Credit Admin API v1.0 is running",
		"mode":    h.cfg.AppMode,
		"docs":    "/swagger/index.html",
	})
}

// HealthCheck handles health check
// @Summary Health check
// @Description Check API and session store health
// @Tags Health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health [get]
func (h *HealthHandler) HealthCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	status, overall, sessionStatus := fiber.StatusOK, "ok", "healthy"
	if err := h.sessions.Ping(ctx); err != nil {
		status, overall, sessionStatus = fiber.StatusServiceUnavailable, "degraded", "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overall,
		"checks": fiber.Map{
			"api":           "healthy",
			"session_store": sessionStatus,
			"driver":        h.cfg.Session.Driver,
		},
	})
}

// APIInfo handles API v1 info
// @Summary API v1 info
// @Description Name and version of the API
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string
// @Router / [get]
func (h *HealthHandler) APIInfo(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "Credit Admin API v1.0",
		"version": "1.0.0",
	})
}
