package httpserver

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// Timeouts are expressed in seconds; zero leaves fiber's default.
type Timeouts struct {
	Read  int
	Write int
	Idle  int
}

func InitFiberServer(appName string, timeouts ...Timeouts) *fiber.App {
	cfg := fiber.Config{
		AppName:      appName,
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
		BodyLimit:    1024 * 1024,
		ErrorHandler: jsonErrorHandler,
	}
	if len(timeouts) > 0 {
		cfg.ReadTimeout = time.Duration(timeouts[0].Read) * time.Second
		cfg.WriteTimeout = time.Duration(timeouts[0].Write) * time.Second
		cfg.IdleTimeout = time.Duration(timeouts[0].Idle) * time.Second
	}

	s := fiber.New(cfg)

	s.Use(recover.New(recover.Config{
		EnableStackTrace: true,
	}))
	s.Use(cors.New())
	s.Use(healthcheck.New(healthcheck.Config{
		LivenessEndpoint:  "/manage/health",
		ReadinessEndpoint: "/manage/ready",
	}))

	return s
}

// jsonErrorHandler renders errors escaping handlers as {"error": "..."}.
func jsonErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := "Internal server error"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		msg = fe.Message
	}

	return c.Status(code).JSON(fiber.Map{"error": msg})
}
