package middleware

import (
	"errors"
	"strings"

	"credit-admin/internal/config"
	"credit-admin/internal/core/domain"
	"credit-admin/internal/core/guard"
	"credit-admin/internal/pkg/jwt"
	"credit-admin/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// SessionSource exposes the active session user
type SessionSource interface {
	Current() *domain.User
}

// AccessTokenCookie is the cookie the access token is issued in
const AccessTokenCookie = "access_token"

// tokenFrom reads the access token from the cookie, then the Authorization header
func tokenFrom(c *fiber.Ctx) string {
	if token := c.Cookies(AccessTokenCookie); token != "" {
		return token
	}
	authHeader := c.Get(fiber.HeaderAuthorization)
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

// AuthMiddleware validates the access token and requires its subject to be
// the current session user
func AuthMiddleware(cfg *config.Config, sessions SessionSource) fiber.Handler {
	return func(c *fiber.Ctx) error {
		accessToken := tokenFrom(c)
		if accessToken == "" {
			return response.Denied(c, fiber.StatusUnauthorized, "Access token required", guard.LoginPath)
		}

		claims, err := jwt.Validate(accessToken, cfg.JWT.Secret)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return response.Denied(c, fiber.StatusUnauthorized, "Access token expired", guard.LoginPath)
			}
			return response.Denied(c, fiber.StatusUnauthorized, "Invalid access token", guard.LoginPath)
		}

		// the token outlives logout, the session does not
		user := sessions.Current()
		if user == nil || user.ID != claims.UserID {
			return response.Denied(c, fiber.StatusUnauthorized, "Session expired", guard.LoginPath)
		}

		c.Locals("userID", user.ID)
		c.Locals("role", string(user.Role))
		c.Locals("user", user)

		return c.Next()
	}
}

// CurrentUser returns the session user set by AuthMiddleware
func CurrentUser(c *fiber.Ctx) *domain.User {
	user, _ := c.Locals("user").(*domain.User)
	return user
}

// RequireSession applies the route guard to the request session. With no
// roles any signed in user passes.
func RequireSession(allowed ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		decision := guard.Evaluate(CurrentUser(c), allowed...)
		switch decision.Outcome {
		case guard.Allow:
			return c.Next()
		case guard.Unauthenticated:
			return response.Denied(c, fiber.StatusUnauthorized, "Unauthorized", decision.Redirect)
		default:
			return response.Denied(c, fiber.StatusForbidden, "You don't have permission to access this resource", decision.Redirect)
		}
	}
}

// RequireCapability allows the roles holding capability
func RequireCapability(capability domain.Capability) fiber.Handler {
	return RequireSession(domain.RolesWith(capability)...)
}

// AdminOnly middleware allows only the admin role
func AdminOnly() fiber.Handler {
	return RequireCapability(domain.CapManageUsers)
}

// ReviewerOrAdmin middleware allows verifier or admin roles
func ReviewerOrAdmin() fiber.Handler {
	return RequireCapability(domain.CapVerify)
}

// OptionalAuth sets the session user when a matching token is present
func OptionalAuth(cfg *config.Config, sessions SessionSource) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if accessToken := tokenFrom(c); accessToken != "" {
			claims, err := jwt.Validate(accessToken, cfg.JWT.Secret)
			if err == nil {
				if user := sessions.Current(); user != nil && user.ID == claims.UserID {
					c.Locals("userID", user.ID)
					c.Locals("role", string(user.Role))
					c.Locals("user", user)
				}
			}
		}

		return c.Next()
	}
}
