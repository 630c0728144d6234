package web

import (
	"strings"

	"astrocards/internal/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

// LocationQuery reads the location query parameter of a provider request.
// The value is returned untrimmed and copied out of the request buffer; only a
// missing or blank value fails, with domain.ErrLocationRequired.
func LocationQuery(c *fiber.Ctx) (string, error) {
	location := utils.CopyString(c.Query("location"))
	if strings.TrimSpace(location) == "" {
		return "", domain.ErrLocationRequired
	}
	return location, nil
}

// formLocation reads the location form field and reports whether it was sent.
func formLocation(c *fiber.Ctx) (string, bool) {
	args := c.Request().PostArgs()
	if !args.Has("location") {
		return "", false
	}
	return string(args.Peek("location")), true
}
