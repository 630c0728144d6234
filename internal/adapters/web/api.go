package web

import (
	"context"
	"errors"
	"fmt"
	"time"

	"astrocards/internal/domain"
	"astrocards/internal/usecases"
	"astrocards/pkg/log"

	"github.com/gofiber/fiber/v2"
)

const msgMissingLocation = "Error: 'location' query parameter is missing. Please provide a valid location."

// AstroResponse is the provider's /astro body.
type AstroResponse struct {
	Name      string              `json:"name"`
	Region    string              `json:"region"`
	Country   string              `json:"country"`
	Date      string              `json:"date"`
	Astro     domain.AstroDetails `json:"astro"`
	ExpiresAt time.Time           `json:"expires_at"`
}

// NewAstroResponse flattens a cached entry into the wire shape.
func NewAstroResponse(entry *domain.CachedAstro) AstroResponse {
	return AstroResponse{
		Name:      entry.Record.Name,
		Region:    entry.Record.Region,
		Country:   entry.Record.Country,
		Date:      entry.Record.Date,
		Astro:     entry.Record.Astro,
		ExpiresAt: entry.ExpiresAt,
	}
}

// APIHandlers serves the astro provider API.
type APIHandlers struct {
	getAstro *usecases.GetAstroUseCase
	timeout  time.Duration
}

// NewAPIHandlers creates the provider handlers.
func NewAPIHandlers(getAstro *usecases.GetAstroUseCase, timeout time.Duration) *APIHandlers {
	return &APIHandlers{getAstro: getAstro, timeout: timeout}
}

// GetAstro handles GET /astro?location=.
func (h *APIHandlers) GetAstro(c *fiber.Ctx) error {
	location, err := LocationQuery(c)
	if err != nil {
		log.GlobalWarnCtx(c.UserContext(), "location query parameter missing")
		return c.Status(fiber.StatusBadRequest).SendString(msgMissingLocation)
	}

	ctx := c.UserContext()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	entry, err := h.getAstro.Execute(ctx, location)
	switch {
	case errors.Is(err, domain.ErrLocationRequired):
		return c.Status(fiber.StatusBadRequest).SendString(msgMissingLocation)
	case errors.Is(err, domain.ErrLocationNotFound):
		log.GlobalWarnCtx(ctx, "location not found", "location", location, "error", err)
		return c.Status(fiber.StatusNotFound).
			SendString(fmt.Sprintf("Error: location '%s' was not found. Please check the spelling.", location))
	case err != nil:
		log.GlobalErrorCtx(ctx, "get astro failed", "location", location, "error", err)
		return c.Status(fiber.StatusInternalServerError).
			SendString(fmt.Sprintf("Error: failed to get astro data for location '%s'. Please try again later.", location))
	}

	return c.JSON(NewAstroResponse(entry))
}

// Healthz reports liveness.
func (h *APIHandlers) Healthz(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
