package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// UseMiddleware installs the global middleware. Metrics sit outside recover
// so a panicking handler is still counted, as a 500.
func UseMiddleware(app *fiber.App, metrics *MetricsBuilder) {
	app.Use(metrics.Build())
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
}

// RegisterRoutes mounts the API under /api/v1.
func RegisterRoutes(
	app *fiber.App,
	sessionHandler *SessionHandler,
	uploadHandler *UploadHandler,
	evaluationHandler *EvaluationHandler,
) {
	api := app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	api.Get("/actions", evaluationHandler.HandleListActions)

	sessions := api.Group("/sessions")
	sessions.Post("/", sessionHandler.HandleCreate)
	sessions.Get("/:id", sessionHandler.HandleGet)
	sessions.Delete("/:id", sessionHandler.HandleDelete)
	sessions.Put("/:id/resume", uploadHandler.HandleUploadResume)
	sessions.Put("/:id/job-description", sessionHandler.HandleSetJobDescription)
	sessions.Post("/:id/actions/:action", evaluationHandler.HandleAction)
	sessions.Post("/:id/ask", evaluationHandler.HandleAsk)
	sessions.Get("/:id/analytics", sessionHandler.HandleAnalytics)
	sessions.Get("/:id/report", evaluationHandler.HandleReport)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "ATS Resume Checker API",
			"version": "1.0.0",
			"endpoints": []string{
				"GET /api/v1/actions",
				"POST /api/v1/sessions",
				"PUT /api/v1/sessions/:id/resume",
				"PUT /api/v1/sessions/:id/job-description",
				"POST /api/v1/sessions/:id/actions/:action",
				"POST /api/v1/sessions/:id/ask",
				"GET /api/v1/sessions/:id/analytics",
				"GET /api/v1/sessions/:id/report",
			},
		})
	})
}

// ErrorHandler renders errors that escape a handler as JSON.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
