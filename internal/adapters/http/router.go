package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/melih/dockwatch/internal/logging"
	"github.com/melih/dockwatch/internal/metrics"
)

// NewApp wires the container routes, the health check and, if enabled, the
// Prometheus endpoint into a Fiber app.
func NewApp(h *ContainerHandler, withMetrics bool) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "dockwatch",
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	app.Use(requestLogger)

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	if withMetrics {
		app.Get("/metrics", adaptor.HTTPHandler(metrics.PromHandler()))
	}

	api := app.Group("/api")
	v1 := api.Group("/v1")

	containers := v1.Group("/containers")
	containers.Get("/", h.ListContainers)
	containers.Post("/:id/start", h.StartContainer)
	containers.Post("/:id/stop", h.StopContainer)
	containers.Post("/:id/restart", h.RestartContainer)
	containers.Get("/:id/logs", h.GetContainerLogs)

	return app
}

func requestLogger(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	logging.Get().Debug().
		Str("method", c.Method()).
		Str("path", c.Path()).
		Int("status", c.Response().StatusCode()).
		Dur("took", time.Since(start)).
		Msg("request")
	return err
}
