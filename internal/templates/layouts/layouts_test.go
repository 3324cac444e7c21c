package layouts

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/codr1/nyxxdocs/internal/config"
	"github.com/codr1/nyxxdocs/internal/models"
	"github.com/codr1/nyxxdocs/internal/templates/components/discord"
	"github.com/codr1/nyxxdocs/internal/theme"
)

func TestThemeCSSVars(t *testing.T) {
	dark := themeCSSVars(theme.Dark, nil)
	if !strings.Contains(dark, "--theme-background:"+models.DarkPalette().Background) {
		t.Fatalf("dark vars = %s", dark)
	}

	light := themeCSSVars(theme.Light, nil)
	if !strings.Contains(light, "--theme-background:"+models.LightPalette().Background) {
		t.Fatalf("light vars = %s", light)
	}

	bad := models.LightPalette()
	bad.Text = bad.Background
	if got := themeCSSVars(theme.Light, &bad); got != light {
		t.Fatalf("invalid palette should fall back, got %s", got)
	}
}

func TestBaseRendersShell(t *testing.T) {
	cfg := config.Default()
	cfg.Site.Title = "nyxx"
	cfg.Site.ProjectName = "nyxx"
	cfg.Navbar.Title = "nyxx"
	cfg.Navbar.Items = []config.NavbarItem{
		{Type: "doc", DocID: "intro", Label: "Docs", Position: "left"},
		{Href: "https://github.com/nyxx-discord/nyxx", Label: "GitHub", Position: "right"},
	}
	cfg.Footer.Links = []config.FooterColumn{{
		Title: "Community",
		Items: []config.FooterLink{{Label: "Discord", Href: "https://discord.gg/nyxx"}},
	}}
	cfg.Metadata = []config.MetadataTag{{Name: "keywords", Content: "nyxx, dart"}}

	var buf bytes.Buffer
	page := Base(PageProps{
		Config: cfg,
		Mode:   theme.Light,
		Title:  "Home",
		Now:    time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}, discord.Text("<hello>"))
	if err := page.Render(context.Background(), &buf); err != nil {
		t.Fatalf("render: %v", err)
	}

	html := buf.String()
	for _, want := range []string{
		`data-theme="light"`,
		"<title>Home | nyxx</title>",
		`href="/docs/intro"`,
		`href="https://github.com/nyxx-discord/nyxx"`,
		`<meta name="keywords" content="nyxx, dart">`,
		"&lt;hello&gt;",
		"Copyright © 2016 - 2026 nyxx.",
		"/api/v1/theme/stream",
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("missing %q in page", want)
		}
	}
}

func TestThemeScriptLeavesCookieToServer(t *testing.T) {
	script := themeScript()
	if strings.Contains(script, "document.cookie") {
		t.Fatalf("stream events must not overwrite the viewer's cookie: %s", script)
	}
	if !strings.Contains(script, `method:"PUT"`) {
		t.Fatalf("toggle should write through the API")
	}
}
