package pages_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"astrocards/internal/presentation"
	"astrocards/templates/pages"
)

func TestHome_RendersFormAndResultsTarget(t *testing.T) {
	var buf bytes.Buffer

	err := pages.Home(presentation.State{Location: "Oslo"}).Render(context.Background(), &buf)

	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := buf.String()
	for _, want := range []string{"<!doctype html>", `id="search-form"`, `id="results"`, `value="Oslo"`, "htmx.org"} {
		if !strings.Contains(html, want) {
			t.Errorf("missing %q", want)
		}
	}
}

func TestError_RendersMessage(t *testing.T) {
	var buf bytes.Buffer

	_ = pages.Error("Page not found.").Render(context.Background(), &buf)

	if !strings.Contains(buf.String(), "Page not found.") {
		t.Errorf("message missing: %s", buf.String())
	}
}

func TestHome_LayoutWrapsBody(t *testing.T) {
	var buf bytes.Buffer

	if err := pages.Home(presentation.State{}).Render(context.Background(), &buf); err != nil {
		t.Fatalf("render: %v", err)
	}

	html := buf.String()
	if !strings.Contains(html, "<title>Sun &amp; Moon</title>") {
		t.Errorf("title missing: %s", html)
	}
	main := strings.Index(html, `<main class="container">`)
	form := strings.Index(html, `id="search-form"`)
	end := strings.Index(html, "</main>")
	if main < 0 || form < main || end < form {
		t.Errorf("form not rendered inside main: %s", html)
	}
}
