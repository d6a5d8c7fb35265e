package handlers

import (
	"errors"
	"log"

	"credit-admin/internal/core/domain"
	"credit-admin/internal/core/guard"
	"credit-admin/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// writeError maps a domain error kind onto the response envelope. fallback
// is the message for unexpected errors.
func writeError(c *fiber.Ctx, err error, fallback string) error {
	var verr *domain.ValidationError

	switch {
	case errors.As(err, &verr):
		return response.ValidationFailed(c, "Validation failed", verr.Fields)
	case errors.Is(err, domain.ErrNotFound):
		return response.NotFound(c, err.Error())
	case errors.Is(err, domain.ErrConflict):
		return response.Conflict(c, err.Error())
	case errors.Is(err, domain.ErrInvalidOperation), errors.Is(err, domain.ErrInvalidTransition):
		return response.BadRequest(c, err.Error())
	case errors.Is(err, domain.ErrUnauthenticated):
		return response.Denied(c, fiber.StatusUnauthorized, err.Error(), guard.LoginPath)
	case errors.Is(err, domain.ErrInvalidCredentials):
		return response.Unauthorized(c, "Invalid email or password")
	case errors.Is(err, domain.ErrForbidden):
		return response.Denied(c, fiber.StatusForbidden, err.Error(), guard.LandingPath)
	default:
		log.Printf("❌ %s: %v", fallback, err)
		return response.InternalServerError(c, fallback)
	}
}
