package service

import (
	"context"
	"strings"
	"testing"

	"github.com/wingedflyer/portal/internal/domain"
)

func TestRenderMarkdown(t *testing.T) {
	svc := NewRenderService(nil)

	html, err := svc.Render(context.Background(), domain.Flyer{
		ID:      1,
		Content: "# Fresh Vegetables\n\nOpen *every* Saturday.",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(html, "<h1") || !strings.Contains(html, "Fresh Vegetables") {
		t.Fatalf("expected rendered heading, got %q", html)
	}
	if !strings.Contains(html, "<em>every</em>") {
		t.Fatalf("expected emphasis, got %q", html)
	}
}

func TestRenderStripsScripts(t *testing.T) {
	svc := NewRenderService(nil)

	html, err := svc.Render(context.Background(), domain.Flyer{
		ID:      2,
		Content: "hello <script>alert('x')</script> world",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(html, "<script") {
		t.Fatalf("script tag survived sanitization: %q", html)
	}
	if !strings.Contains(html, "hello") || !strings.Contains(html, "world") {
		t.Fatalf("content lost during sanitization: %q", html)
	}
}

func TestRenderKeepsLinks(t *testing.T) {
	svc := NewRenderService(nil)

	html, err := svc.Render(context.Background(), domain.Flyer{
		ID:      3,
		Content: "[visit us](https://example.com/stall)",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(html, `href="https://example.com/stall"`) {
		t.Fatalf("expected link to survive, got %q", html)
	}
}
