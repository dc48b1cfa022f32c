package http

import (
	"math/rand"
	"os"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"weather-display/internal/admin"
	"weather-display/internal/services/weather"
	"weather-display/internal/settings"
	"weather-display/pkg/observe"
)

var validate = validator.New()

// Deps are the services the HTTP surface exposes.
type Deps struct {
	Weather  *weather.WeatherService
	Flags    *settings.Flags
	Console  *admin.Console
	FrameURL string

	// Optional; real clock and time-seeded rand by default.
	Clock clockwork.Clock
	Rand  *rand.Rand

	SwaggerPath string
}

type routes struct {
	service  *weather.WeatherService
	flags    *settings.Flags
	console  *admin.Console
	frameURL string
	clock    clockwork.Clock

	rngMu sync.Mutex
	rng   *rand.Rand

	l *observe.Logger
}

func NewRouter(app *fiber.App, deps Deps, l *observe.Logger) {
	r := &routes{
		service:  deps.Weather,
		flags:    deps.Flags,
		console:  deps.Console,
		frameURL: deps.FrameURL,
		clock:    deps.Clock,
		rng:      deps.Rand,
		l:        l,
	}
	if r.clock == nil {
		r.clock = clockwork.NewRealClock()
	}
	if r.rng == nil {
		r.rng = rand.New(rand.NewSource(r.clock.Now().UnixNano()))
	}

	swaggerPath := deps.SwaggerPath
	if swaggerPath == "" {
		swaggerPath = "docs/swagger.json"
	}

	// Swagger documentation
	app.Get("/swagger/doc.json", func(c *fiber.Ctx) error {
		swaggerData, err := os.ReadFile(swaggerPath)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "Failed to read Swagger documentation"})
		}

		c.Set("Content-Type", "application/json")
		return c.Send(swaggerData)
	})

	app.Get("/swagger/*", swagger.New(swagger.Config{
		URL:         "/swagger/doc.json",
		DeepLinking: true,
	}))

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// API routes
	app.Get("/weather", r.handleWeatherCall)

	v1 := app.Group("/api/v1")

	v1.Get("/weather/current", r.handleCurrentWeather)
	v1.Post("/weather/search", r.handleWeatherSearch)
	v1.Get("/cities", r.handleCityLookup)
	v1.Get("/theme/:condition", r.handleTheme)

	v1.Get("/schedule/queues", r.handleQueues)
	v1.Get("/schedule/week", r.handleWeek)
	v1.Get("/light", r.handleLight)

	v1.Get("/settings", r.handleSettings)
	v1.Put("/settings/:key", r.handleSetSetting)

	v1.Get("/tour", r.handleTour)
	v1.Post("/tour/layout", r.handleTourLayout)
	v1.Post("/tour/complete", r.handleTourComplete)

	adm := v1.Group("/admin")
	adm.Get("/users", r.handleUsers)
	adm.Post("/users/:id/toggle-block", r.handleToggleBlock)
	adm.Post("/notifications", r.handleBroadcast)
	adm.Put("/light-block", r.handleLightBlock)
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error" example:"Missing required parameter: lat"`
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: msg})
}

// bindJSON parses and validates a request body. The returned *fiber.Error
// is rendered by the server's error handler.
func bindJSON(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(dst); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return nil
}
