package web_test

import (
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"astrocards/internal/adapters/web"
	"astrocards/internal/domain"

	"github.com/gofiber/fiber/v2"
)

func TestLocationQuery(t *testing.T) {
	testCases := []struct {
		name     string
		target   string
		expected string
		wantErr  error
	}{
		{name: "plain", target: "/astro?location=Seattle", expected: "Seattle"},
		{name: "encoded", target: "/astro?location=S%C3%A3o+Paulo", expected: "São Paulo"},
		{name: "keeps surrounding spaces", target: "/astro?location=+Lima+", expected: " Lima "},
		{name: "missing", target: "/astro", wantErr: domain.ErrLocationRequired},
		{name: "empty", target: "/astro?location=", wantErr: domain.ErrLocationRequired},
		{name: "blank", target: "/astro?location=+++", wantErr: domain.ErrLocationRequired},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			var got string
			var gotErr error
			app := fiber.New()
			app.Get("/astro", func(c *fiber.Ctx) error {
				got, gotErr = web.LocationQuery(c)
				return c.SendStatus(fiber.StatusNoContent)
			})

			// Act
			resp, err := app.Test(httptest.NewRequest("GET", tc.target, nil))
			if err != nil {
				t.Fatalf("app.Test() error = %v", err)
			}
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()

			// Assert
			if !errors.Is(gotErr, tc.wantErr) {
				t.Errorf("error: got %v, want %v", gotErr, tc.wantErr)
			}
			if got != tc.expected {
				t.Errorf("location: got %q, want %q", got, tc.expected)
			}
		})
	}
}

func TestLocationQuery_ValueOutlivesRequest(t *testing.T) {
	// Arrange
	var got []string
	app := fiber.New()
	app.Get("/astro", func(c *fiber.Ctx) error {
		location, err := web.LocationQuery(c)
		if err == nil {
			got = append(got, location)
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
	want := []string{"Seattle", "Reykjavik", "Wellington"}

	// Act
	for _, location := range want {
		resp, err := app.Test(httptest.NewRequest("GET", "/astro?location="+location, nil))
		if err != nil {
			t.Fatalf("app.Test() error = %v", err)
		}
		resp.Body.Close()
	}

	// Assert
	if len(got) != len(want) {
		t.Fatalf("got %d values, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("value %d: got %q, want %q", i, got[i], want[i])
		}
	}
}
