package http

import (
	"math"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"weather-display/internal/models"
	"weather-display/internal/services/weather"
)

// GetWeather godoc
// @Summary Get normalized weather
// @Description Fetches current conditions and the 7-day forecast for a location and puts them on display.
// @Description Upstream failures yield a degraded report instead of an error.
// @Tags Weather
// @Produce json
// @Param lat query number true "Latitude coordinate (-90 to 90)" minimum(-90) maximum(90) example(50.4501)
// @Param lon query number true "Longitude coordinate (-180 to 180)" minimum(-180) maximum(180) example(30.5234)
// @Param name query string false "City name shown with the report" example(Київ)
// @Success 200 {object} models.WeatherReport "Successful response"
// @Failure 400 {object} ErrorResponse "Bad request - invalid parameters"
// @Router /weather [get]
func (r *routes) handleWeatherCall(c *fiber.Ctx) error {
	lat := c.Query("lat")
	lon := c.Query("lon")

	// Check for required parameters
	if lat == "" {
		return badRequest(c, "Missing required parameter: lat")
	}

	if lon == "" {
		return badRequest(c, "Missing required parameter: lon")
	}

	latFloat, err := strconv.ParseFloat(lat, 64)
	if err != nil {
		return badRequest(c, "Invalid latitude format")
	}

	if !isFinite(latFloat) || latFloat < -90 || latFloat > 90 {
		return badRequest(c, "Latitude must be between -90 and 90")
	}

	lonFloat, err := strconv.ParseFloat(lon, 64)
	if err != nil {
		return badRequest(c, "Invalid longitude format")
	}

	if !isFinite(lonFloat) || lonFloat < -180 || lonFloat > 180 {
		return badRequest(c, "Longitude must be between -180 and 180")
	}

	name := strings.TrimSpace(c.Query("name"))
	if name == "" {
		name = weather.FallbackCity
	}

	report, _ := r.service.Refresh(c.UserContext(), models.City{Name: name, Lat: latFloat, Lon: lonFloat})

	return c.JSON(report)
}

// GetCurrentWeather godoc
// @Summary Get displayed weather
// @Description Returns the report currently on display and its location.
// @Tags Weather
// @Produce json
// @Success 200 {object} store.Entry
// @Router /api/v1/weather/current [get]
func (r *routes) handleCurrentWeather(c *fiber.Ctx) error {
	return c.JSON(r.service.Current())
}

type searchRequest struct {
	Query string `json:"query" validate:"required"`
}

// SearchWeather godoc
// @Summary Search a city and display its weather
// @Tags Weather
// @Accept json
// @Produce json
// @Param request body searchRequest true "City query"
// @Success 200 {object} store.Entry
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "No city matches the query"
// @Router /api/v1/weather/search [post]
func (r *routes) handleWeatherSearch(c *fiber.Ctx) error {
	var req searchRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	entry, found := r.service.Search(c.UserContext(), req.Query)
	if !found {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: "City not found"})
	}

	return c.JSON(entry)
}

// LookupCity godoc
// @Summary Geocode a city name
// @Tags Weather
// @Produce json
// @Param name query string true "City name" example(Львів)
// @Success 200 {object} models.City
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/cities [get]
func (r *routes) handleCityLookup(c *fiber.Ctx) error {
	name := c.Query("name")
	if strings.TrimSpace(name) == "" {
		return badRequest(c, "Missing required parameter: name")
	}

	city, found := r.service.SearchCity(c.UserContext(), name)
	if !found {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: "City not found"})
	}

	return c.JSON(city)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
