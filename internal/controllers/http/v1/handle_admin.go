package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"weather-display/internal/admin"
)

// ListUsers godoc
// @Summary Search users
// @Tags Admin
// @Produce json
// @Param q query string false "Name or location fragment"
// @Success 200 {array} admin.User
// @Router /api/v1/admin/users [get]
func (r *routes) handleUsers(c *fiber.Ctx) error {
	return c.JSON(r.console.Users(c.Query("q")))
}

// ToggleBlock godoc
// @Summary Block or unblock a user
// @Tags Admin
// @Produce json
// @Param id path integer true "User id"
// @Success 200 {object} admin.User
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/admin/users/{id}/toggle-block [post]
func (r *routes) handleToggleBlock(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return badRequest(c, "Invalid user id")
	}

	u, err := r.console.ToggleBlock(id)
	if errors.Is(err, admin.ErrUserNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: "User not found"})
	}
	if err != nil {
		return err
	}

	return c.JSON(u)
}

type broadcastRequest struct {
	Message string `json:"message" validate:"required"`
}

// Broadcast godoc
// @Summary Send a push notification to every user
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body broadcastRequest true "Message"
// @Success 201 {object} admin.Notification
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /api/v1/admin/notifications [post]
func (r *routes) handleBroadcast(c *fiber.Ctx) error {
	var req broadcastRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	n, err := r.console.Broadcast(c.UserContext(), req.Message)
	switch {
	case errors.Is(err, admin.ErrEmptyMessage):
		return badRequest(c, "Message is empty")
	case err != nil:
		return c.Status(fiber.StatusBadGateway).JSON(ErrorResponse{Error: "Failed to send notification"})
	}

	return c.Status(fiber.StatusCreated).JSON(n)
}

type lightBlockRequest struct {
	Blocked *bool `json:"blocked" validate:"required"`
}

// SetLightBlock godoc
// @Summary Block or allow the light page
// @Tags Admin
// @Accept json
// @Param request body lightBlockRequest true "Switch"
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/admin/light-block [put]
func (r *routes) handleLightBlock(c *fiber.Ctx) error {
	var req lightBlockRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	if err := r.console.SetLightPageBlocked(c.UserContext(), *req.Blocked); err != nil {
		r.l.Error(err)
		return fiber.ErrInternalServerError
	}

	return c.SendStatus(fiber.StatusNoContent)
}
