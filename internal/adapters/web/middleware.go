package web

import (
	"errors"
	"time"

	"astrocards/pkg/log"
	"astrocards/templates/pages"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/utils"
)

// NewApp creates a fiber app with the shared middleware chain:
// recover, request id, request id bridge, request logging.
// Values read from the request are immutable so they can outlive the handler
// in queued log entries and cache keys.
func NewApp(name string, errorHandler fiber.ErrorHandler) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               name,
		Immutable:             true,
		ErrorHandler:          errorHandler,
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(requestid.New(RequestIDConfig()))
	app.Use(RequestIDToContextMiddleware())
	app.Use(RequestLoggerMiddleware())

	return app
}

// PageErrorHandler renders fiber errors as an HTML page.
func PageErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	if code >= fiber.StatusInternalServerError {
		log.GlobalErrorCtx(c.UserContext(), "request failed", "error", err)
	}

	return renderStatus(c, code, pages.Error(friendlyStatus(code)))
}

// friendlyStatus returns a neutral, non-blaming message for a status code.
func friendlyStatus(code int) string {
	switch code {
	case fiber.StatusNotFound:
		return "This page doesn't exist. Try searching for a location instead."
	case fiber.StatusMethodNotAllowed:
		return "That action isn't available here."
	default:
		return "Something went wrong on our side. Please try again in a moment."
	}
}

// RequestIDConfig returns the configuration for Fiber's requestid middleware.
// Uses X-Request-ID header, generates UUID if not present.
func RequestIDConfig() requestid.Config {
	return requestid.Config{
		Header:     "X-Request-ID",
		ContextKey: "requestid",
	}
}

// RequestIDToContextMiddleware bridges Fiber's requestid to pkg/log context.
// Must be used AFTER requestid.New() middleware.
func RequestIDToContextMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Get request ID from Fiber's requestid middleware
		reqID := c.Locals("requestid")
		if reqID != nil {
			if id, ok := reqID.(string); ok {
				ctx := log.WithRequestID(c.UserContext(), utils.CopyString(id))
				c.SetUserContext(ctx)
			}
		}
		return c.Next()
	}
}

// RequestLoggerMiddleware logs HTTP requests in structured JSON format.
// Replaces Fiber's default logger middleware.
// Must be used AFTER RequestIDToContextMiddleware.
func RequestLoggerMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		// Process request
		err := c.Next()

		// Calculate latency
		latency := time.Since(start)

		// Get status code
		status := c.Response().StatusCode()

		// Determine log level based on status
		ctx := c.UserContext()
		fields := []any{
			"method", c.Method(),
			"path", utils.CopyString(c.Path()),
			"status", status,
			"latency_ms", latency.Milliseconds(),
			"ip", c.IP(),
			"user_agent", utils.CopyString(c.Get("User-Agent")),
		}

		// Add error if present
		if err != nil {
			fields = append(fields, "error", err.Error())
		}

		// Log based on status code
		switch {
		case status >= 500:
			log.GlobalErrorCtx(ctx, "request completed", fields...)
		case status >= 400:
			log.GlobalWarnCtx(ctx, "request completed", fields...)
		default:
			log.GlobalInfoCtx(ctx, "request completed", fields...)
		}

		return err
	}
}
