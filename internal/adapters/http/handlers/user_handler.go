package handlers

import (
	"credit-admin/internal/adapters/http/middleware"
	"credit-admin/internal/core/services"
	"credit-admin/internal/pkg/pagination"
	"credit-admin/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles roster management endpoints
type UserHandler struct {
	store *services.IdentityStore
}

// NewUserHandler creates a new user handler
func NewUserHandler(store *services.IdentityStore) *UserHandler {
	return &UserHandler{
		store: store,
	}
}

// UpdateProfileRequest represents update profile input (for self)
type UpdateProfileRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Image *string `json:"image"`
}

// ListUsers handles listing the roster (Admin only)
// @Summary List all users
// @Description Get a paginated list of the roster (Admin only)
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /users [get]
func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	users, err := h.store.ListUsers(c.UserContext())
	if err != nil {
		return writeError(c, err, "Failed to list users")
	}

	page := pagination.Slice(users, params)
	return response.Success(c, "Users retrieved successfully", pagination.NewResponse(page, params, int64(len(users))))
}

// GetUser handles getting a user by ID (Admin only)
// @Summary Get user by ID
// @Description Get a specific user by ID (Admin only)
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	user, err := h.store.GetUser(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err, "Failed to get user")
	}

	return response.Success(c, "User retrieved successfully", user)
}

// CreateUser handles adding a user to the roster (Admin only)
// @Summary Add user
// @Description Add a user to the roster. Emails must be unique (Admin only)
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.AddUserInput true "User data"
// @Success 201 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 409 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /users [post]
func (h *UserHandler) CreateUser(c *fiber.Ctx) error {
	var input services.AddUserInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	user, err := h.store.AddUser(c.UserContext(), &input)
	if err != nil {
		return writeError(c, err, "Failed to add user")
	}

	return response.Created(c, "User added successfully", user)
}

// UpdateUser handles merging fields into a roster entry (Admin only)
// @Summary Update user
// @Description Merge the given fields into a user (Admin only)
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param body body services.UpdateUserInput true "Fields to change"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /users/{id} [put]
func (h *UserHandler) UpdateUser(c *fiber.Ctx) error {
	var input services.UpdateUserInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	user, err := h.store.UpdateUser(c.UserContext(), c.Params("id"), &input)
	if err != nil {
		return writeError(c, err, "Failed to update user")
	}

	return response.Success(c, "User updated successfully", user)
}

// DeleteUser handles removing a user from the roster (Admin only)
// @Summary Remove user
// @Description Remove a user. The session user cannot remove itself (Admin only)
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /users/{id} [delete]
func (h *UserHandler) DeleteUser(c *fiber.Ctx) error {
	if err := h.store.RemoveUser(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err, "Failed to remove user")
	}

	return response.Success(c, "User removed successfully", nil)
}

// UpdateProfile handles the session user editing itself
// @Summary Update own profile
// @Description Update name, email or image of the session user
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body UpdateProfileRequest true "Profile data"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /profile [put]
func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	updated, err := h.store.UpdateUser(c.UserContext(), user.ID, &services.UpdateUserInput{
		Name:  req.Name,
		Email: req.Email,
		Image: req.Image,
	})
	if err != nil {
		return writeError(c, err, "Failed to update profile")
	}

	return response.Success(c, "Profile updated successfully", updated)
}
