package handlers

import (
	"log"
	"time"

	"credit-admin/internal/adapters/http/middleware"
	"credit-admin/internal/config"
	"credit-admin/internal/core/guard"
	"credit-admin/internal/core/services"
	"credit-admin/internal/pkg/jwt"
	"credit-admin/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	store *services.IdentityStore
	cfg   *config.Config
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(store *services.IdentityStore, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		store: store,
		cfg:   cfg,
	}
}

// LoginRequest represents login request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles user login
// @Summary Login user
// @Description Authenticate by email and open the session
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Login credentials"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	user, err := h.store.Login(c.UserContext(), &services.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return writeError(c, err, "Failed to login")
	}

	token, err := jwt.Issue(jwt.Subject{
		UserID: user.ID,
		Email:  user.Email,
		Role:   string(user.Role),
	}, h.cfg.JWT.Secret, time.Duration(h.cfg.JWT.AccessTokenMins)*time.Minute)
	if err != nil {
		return response.InternalServerError(c, "Failed to issue access token")
	}

	h.setAuthCookie(c, token)

	return response.Success(c, "Login successful", fiber.Map{
		"access_token": token.Value,
		"expires_at":   token.ExpiresAt,
		"user":         user,
		"redirect":     guard.LandingPath,
	})
}

// Logout handles user logout
// @Summary Logout user
// @Description Clear the session of the token holder
// @Tags Auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	// the in-memory session is cleared even when the persisted record is not
	if err := h.store.Logout(c.UserContext()); err != nil {
		log.Printf("⚠️ Logout: persisted session not removed: %v", err)
	}

	h.clearAuthCookie(c)

	return response.Success(c, "Logged out successfully", fiber.Map{
		"redirect": guard.LoginPath,
	})
}

// Me returns the current user info
// @Summary Get current user
// @Description Get the session user and the views it may open
// @Tags Auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	return response.Success(c, "User retrieved successfully", fiber.Map{
		"user":       user,
		"navigation": guard.Navigation(user),
	})
}

// setAuthCookie sets the access token cookie
func (h *AuthHandler) setAuthCookie(c *fiber.Ctx, token *jwt.Token) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.AccessTokenCookie,
		Value:    token.Value,
		Path:     "/",
		Expires:  token.ExpiresAt,
		Secure:   h.cfg.Cookie.Secure,
		HTTPOnly: true,
		SameSite: h.cfg.Cookie.SameSite,
		Domain:   h.cfg.Cookie.Domain,
	})
}

// clearAuthCookie clears the access token cookie
func (h *AuthHandler) clearAuthCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.AccessTokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Now().Add(-1 * time.Hour),
		Secure:   h.cfg.Cookie.Secure,
		HTTPOnly: true,
		SameSite: h.cfg.Cookie.SameSite,
		Domain:   h.cfg.Cookie.Domain,
	})
}
