package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/lead-intake/internal/api/dto"
	"github.com/spec-kit/lead-intake/internal/service"
)

// UsersHandler exposes the admin user directory.
type UsersHandler struct {
	users *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(userService *service.UserService) *UsersHandler {
	return &UsersHandler{users: userService}
}

// List GET /api/user.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	page, err := h.users.List(c.UserContext(), service.UserQuery{
		Role:  c.Query("role"),
		Page:  parseInt(c.Query("page"), 1),
		Limit: parseInt(c.Query("limit"), 0),
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.Success(dto.UserListResponse{
		Users:       page.Items,
		TotalPages:  page.TotalPages,
		CurrentPage: page.Page,
		TotalUsers:  page.Total,
	}))
}

// Get GET /api/user/:id.
func (h *UsersHandler) Get(c *fiber.Ctx) error {
	user, err := h.users.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.Success(fiber.Map{"user": user}))
}

// Update PUT /api/user/:id.
func (h *UsersHandler) Update(c *fiber.Ctx) error {
	var req service.UserUpdateInput
	if err := parseBody(c, &req); err != nil {
		return err
	}
	user, err := h.users.Update(c.UserContext(), c.Params("id"), req)
	if err != nil {
		return err
	}
	return c.JSON(dto.SuccessMessage("User updated successfully", fiber.Map{"user": user}))
}

// Delete DELETE /api/user/:id.
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	if err := h.users.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(dto.SuccessMessage("User deleted successfully", nil))
}
