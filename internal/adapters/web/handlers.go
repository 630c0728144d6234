package web

import (
	"context"
	"time"

	"astrocards/internal/presentation"
	"astrocards/pkg/log"
	"astrocards/templates/components"
	"astrocards/templates/pages"
	"astrocards/templates/partials"

	"github.com/a-h/templ"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
)

// Handlers contains the HTTP handlers for the web application.
type Handlers struct {
	sessions       *SessionStore
	requestTimeout time.Duration
}

// NewHandlers creates a new Handlers instance. A zero requestTimeout leaves
// submissions bounded only by the client connection.
func NewHandlers(sessions *SessionStore, requestTimeout time.Duration) *Handlers {
	return &Handlers{
		sessions:       sessions,
		requestTimeout: requestTimeout,
	}
}

// render is a helper to render templ components.
func render(c *fiber.Ctx, component templ.Component) error {
	c.Set("Content-Type", "text/html")
	return adaptor.HTTPHandler(templ.Handler(component))(c)
}

// renderStatus renders a component with a non-200 status.
func renderStatus(c *fiber.Ctx, status int, component templ.Component) error {
	c.Set("Content-Type", "text/html")
	return adaptor.HTTPHandler(templ.Handler(component, templ.WithStatus(status)))(c)
}

// controller returns the caller's session controller, starting a session
// and setting the cookie when there is none. The session id is added to the
// request's log fields.
func (h *Handlers) controller(c *fiber.Ctx) *presentation.Controller {
	if id := c.Cookies(SessionCookie); id != "" {
		if ctrl, ok := h.sessions.Lookup(id); ok {
			c.SetUserContext(log.WithFields(c.UserContext(), "session_id", id))
			return ctrl
		}
	}

	id, ctrl := h.sessions.Create()
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    id,
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	c.SetUserContext(log.WithFields(c.UserContext(), "session_id", id))
	return ctrl
}

// Home renders the page for the caller's current state.
func (h *Handlers) Home(c *fiber.Ctx) error {
	return render(c, pages.Home(h.controller(c).Snapshot()))
}

// Location records the text typed so far. It never queries the provider.
func (h *Handlers) Location(c *fiber.Ctx) error {
	location, _ := formLocation(c)
	state := h.controller(c).OnLocationChanged(location)
	return render(c, components.LocationInput(state.Location))
}

// Submit queries the provider for the session's location. htmx requests get
// the results partial; plain form posts are redirected back to the page.
func (h *Handlers) Submit(c *fiber.Ctx) error {
	ctrl := h.controller(c)
	if location, ok := formLocation(c); ok {
		ctrl.OnLocationChanged(location)
	}

	ctx := c.UserContext()
	if h.requestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.requestTimeout)
		defer cancel()
	}

	state := ctrl.OnSubmit(ctx)

	if c.Get("HX-Request") != "true" {
		return c.Redirect("/", fiber.StatusSeeOther)
	}
	return render(c, partials.Results(state))
}

// Healthz reports liveness.
func (h *Handlers) Healthz(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
