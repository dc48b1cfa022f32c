package http

import (
	"github.com/gofiber/fiber/v2"

	"weather-display/internal/models"
	"weather-display/internal/schedule"
	"weather-display/internal/theme"
)

// GetTheme godoc
// @Summary Visual assets for a condition
// @Tags Display
// @Produce json
// @Param condition path string true "Condition" Enums(clear, overcast, rain, snow, night, storm)
// @Success 200 {object} theme.Asset
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/theme/{condition} [get]
func (r *routes) handleTheme(c *fiber.Ctx) error {
	cond, err := models.ParseCondition(c.Params("condition"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: "Unknown condition"})
	}

	return c.JSON(theme.For(cond))
}

// GetQueues godoc
// @Summary Outage schedule per queue
// @Tags Light
// @Produce json
// @Success 200 {array} schedule.QueueSchedule
// @Router /api/v1/schedule/queues [get]
func (r *routes) handleQueues(c *fiber.Ctx) error {
	return c.JSON(schedule.Queues())
}

type weekResponse struct {
	Days    []schedule.DaySchedule `json:"days"`
	Current schedule.Slot          `json:"current"`
}

// GetWeek godoc
// @Summary Weekly outage grid
// @Tags Light
// @Produce json
// @Success 200 {object} weekResponse
// @Router /api/v1/schedule/week [get]
func (r *routes) handleWeek(c *fiber.Ctx) error {
	r.rngMu.Lock()
	days := schedule.Week(r.rng)
	r.rngMu.Unlock()

	return c.JSON(weekResponse{
		Days:    days,
		Current: schedule.CurrentSlot(r.clock.Now()),
	})
}

type lightResponse struct {
	Blocked    bool   `json:"blocked"`
	FrameURL   string `json:"frame_url,omitempty"`
	Background string `json:"background"`
}

// GetLight godoc
// @Summary Light page access
// @Description Returns the embedded schedule page URL unless an administrator blocked the page.
// @Tags Light
// @Produce json
// @Success 200 {object} lightResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/light [get]
func (r *routes) handleLight(c *fiber.Ctx) error {
	blocked, err := r.flags.LightPageBlocked(c.UserContext())
	if err != nil {
		r.l.Error(err)
		return fiber.ErrInternalServerError
	}

	resp := lightResponse{Blocked: blocked, Background: theme.UtilityBackground}
	if !blocked {
		resp.FrameURL = r.frameURL
	}

	return c.JSON(resp)
}
