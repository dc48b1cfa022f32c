package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"weather-display/internal/settings"
	"weather-display/internal/tour"
)

// GetSettings godoc
// @Summary All durable flags
// @Tags Settings
// @Produce json
// @Success 200 {object} map[string]bool
// @Router /api/v1/settings [get]
func (r *routes) handleSettings(c *fiber.Ctx) error {
	all, err := r.flags.All(c.UserContext())
	if err != nil {
		r.l.Error(err)
		return fiber.ErrInternalServerError
	}

	return c.JSON(all)
}

type setSettingRequest struct {
	Value *bool `json:"value" validate:"required"`
}

// SetSetting godoc
// @Summary Set one flag
// @Tags Settings
// @Accept json
// @Param key path string true "Flag" Enums(has_seen_tour, has_seen_copyright, light_page_blocked)
// @Param request body setSettingRequest true "New value"
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/settings/{key} [put]
func (r *routes) handleSetSetting(c *fiber.Ctx) error {
	key, err := settings.ParseKey(c.Params("key"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: "Unknown setting"})
	}

	var req setSettingRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	if err := r.flags.Set(c.UserContext(), key, *req.Value); err != nil {
		if errors.Is(err, settings.ErrUnknownKey) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: "Unknown setting"})
		}
		r.l.Error(err, map[string]any{"key": string(key)})
		return fiber.ErrInternalServerError
	}

	return c.SendStatus(fiber.StatusNoContent)
}

type tourResponse struct {
	Steps      []tour.Step `json:"steps"`
	Start      bool        `json:"start"`
	StartDelay int64       `json:"start_delay_ms"`
}

// GetTour godoc
// @Summary Onboarding steps
// @Description Start is false once the tour has been completed or dismissed.
// @Tags Tour
// @Produce json
// @Success 200 {object} tourResponse
// @Router /api/v1/tour [get]
func (r *routes) handleTour(c *fiber.Ctx) error {
	seen, err := r.flags.HasSeenTour(c.UserContext())
	if err != nil {
		r.l.Error(err)
		return fiber.ErrInternalServerError
	}

	return c.JSON(tourResponse{
		Steps:      tour.Steps(),
		Start:      !seen,
		StartDelay: tour.StartDelay.Milliseconds(),
	})
}

type layoutRequest struct {
	Rect     tour.Rect     `json:"rect"`
	Viewport tour.Viewport `json:"viewport"`
}

// LayoutTour godoc
// @Summary Overlay geometry for an anchor box
// @Tags Tour
// @Accept json
// @Produce json
// @Param request body layoutRequest true "Anchor box and viewport"
// @Success 200 {object} tour.Overlay
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/tour/layout [post]
func (r *routes) handleTourLayout(c *fiber.Ctx) error {
	var req layoutRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	return c.JSON(tour.Layout(req.Rect, req.Viewport))
}

// CompleteTour godoc
// @Summary Record the tour as seen
// @Tags Tour
// @Success 204
// @Router /api/v1/tour/complete [post]
func (r *routes) handleTourComplete(c *fiber.Ctx) error {
	if err := r.flags.MarkTourSeen(c.UserContext()); err != nil {
		r.l.Error(err)
		return fiber.ErrInternalServerError
	}

	return c.SendStatus(fiber.StatusNoContent)
}
