package components_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"astrocards/internal/domain"
	"astrocards/internal/presentation"
	"astrocards/templates/components"

	"github.com/a-h/templ"
)

func renderString(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	if err := c.Render(context.Background(), &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	return buf.String()
}

func TestIlluminationCard_BarWidth(t *testing.T) {
	testCases := []struct {
		percent float64
		want    string
	}{
		{87, `style="width: 87%;"`},
		{0, `style="width: 0%;"`},
		{140, `style="width: 140%;"`},
	}

	for _, tc := range testCases {
		html := renderString(t, components.IlluminationCard(presentation.Illumination(tc.percent)))

		if !strings.Contains(html, tc.want) {
			t.Errorf("%v: missing %s in %s", tc.percent, tc.want, html)
		}
	}
}

func TestEventCard_RendersLabelTimeAndIcon(t *testing.T) {
	card := presentation.EventCard{Label: "Sunrise", Time: "07:28 AM", Icon: "/static/icons/sunrise.svg"}

	html := renderString(t, components.EventCard(card))

	for _, want := range []string{"Sunrise", "07:28 AM", `src="/static/icons/sunrise.svg"`} {
		if !strings.Contains(html, want) {
			t.Errorf("missing %q in %s", want, html)
		}
	}
}

func TestMoonPhaseCard_UnknownPhase(t *testing.T) {
	html := renderString(t, components.MoonPhaseCard(presentation.PhaseCard("Blue Moon")))

	if !strings.Contains(html, presentation.UnknownPhaseIcon) {
		t.Errorf("fallback icon missing: %s", html)
	}
	if !strings.Contains(html, "moon-phase-unknown") {
		t.Errorf("unknown marker missing: %s", html)
	}
}

func TestMoonPhaseCard_KnownPhase(t *testing.T) {
	html := renderString(t, components.MoonPhaseCard(presentation.PhaseCard(domain.FullMoon)))

	if !strings.Contains(html, "Full Moon") || strings.Contains(html, "moon-phase-unknown") {
		t.Errorf("unexpected markup: %s", html)
	}
}

func TestLocationInfo_EscapesText(t *testing.T) {
	html := renderString(t, components.LocationInfo(`<script>alert(1)</script>, b, c`, "Date: 2026-10-16"))

	if strings.Contains(html, "<script>") {
		t.Errorf("text not escaped: %s", html)
	}
	if !strings.Contains(html, "Date: 2026-10-16") {
		t.Errorf("date line missing: %s", html)
	}
}

func TestLocationInput_KeepsValueVerbatim(t *testing.T) {
	html := renderString(t, components.LocationInput(`New "York"`))

	if !strings.Contains(html, `value="New &#34;York&#34;"`) {
		t.Errorf("value not escaped as expected: %s", html)
	}
	if !strings.Contains(html, `hx-post="/location"`) {
		t.Errorf("input trigger missing: %s", html)
	}
}

func TestSearchForm_PostsToSubmit(t *testing.T) {
	html := renderString(t, components.SearchForm("Seattle"))

	for _, want := range []string{`hx-post="/submit"`, `action="/submit"`, `hx-target="#results"`, `value="Seattle"`} {
		if !strings.Contains(html, want) {
			t.Errorf("missing %q in %s", want, html)
		}
	}
}

func TestStatusMessage_EmptyRendersNothing(t *testing.T) {
	if html := renderString(t, components.StatusMessage("")); html != "" {
		t.Errorf("got %q, want empty", html)
	}
}

func TestIlluminationCard_StyleIsSanitized(t *testing.T) {
	// Arrange
	card := presentation.IlluminationCard{Text: "87%", BarWidth: `87%" onmouseover="alert(1)`}

	// Act
	html := renderString(t, components.IlluminationCard(card))

	// Assert
	if strings.Contains(html, `" onmouseover="`) {
		t.Errorf("style value escaped its attribute: %s", html)
	}
}

func TestMoonPhaseCard_ClassList(t *testing.T) {
	html := renderString(t, components.MoonPhaseCard(presentation.PhaseCard(domain.NewMoon)))

	if !strings.Contains(html, `class="card moon-phase-card"`) {
		t.Errorf("class list: %s", html)
	}
}
