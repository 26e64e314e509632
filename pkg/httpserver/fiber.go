package httpserver

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"weatherstack-check/pkg/logger"
)

const (
	LivenessEndpoint  = "/manage/health"
	ReadinessEndpoint = "/manage/ready"
)

type errorResponse struct {
	Error string `json:"error"`
}

// InitFiberServer builds an app with panic recovery, health probes and one
// access log line per request.
func InitFiberServer(appName string, l *logger.Logger) *fiber.App {
	s := fiber.New(fiber.Config{
		AppName:               appName,
		JSONEncoder:           json.Marshal,
		JSONDecoder:           json.Unmarshal,
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler:          errorHandler(l),
	})

	s.Use(recover.New(recover.Config{
		EnableStackTrace: true,
	}))
	s.Use(healthcheck.New(healthcheck.Config{
		LivenessEndpoint:  LivenessEndpoint,
		ReadinessEndpoint: ReadinessEndpoint,
	}))
	s.Use(accessLog(l))

	return s
}

func accessLog(l *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		l.Debug("request served", map[string]any{
			"method":     c.Method(),
			"path":       c.Path(),
			"status":     c.Response().StatusCode(),
			"latency_ms": time.Since(start).Milliseconds(),
		})
		return err
	}
}

func errorHandler(l *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
		}
		if code >= fiber.StatusInternalServerError {
			l.Error(err, map[string]any{"path": c.Path()})
		}
		return c.Status(code).JSON(errorResponse{Error: err.Error()})
	}
}
