package home

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/a-h/templ"
)

func TestPage(t *testing.T) {
	var buf bytes.Buffer
	preview := templ.Raw("<div id=\"preview\"></div>")
	err := Page(HeroProps{Title: "nyxx", Tagline: "Dart <3 Discord", DocsURL: "/docs/intro"}, Features, preview).
		Render(context.Background(), &buf)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	html := buf.String()
	if got := strings.Count(html, `class="col col--4"`); got != len(Features) {
		t.Fatalf("feature columns = %d, want %d", got, len(Features))
	}
	for _, want := range []string{"Dart &lt;3 Discord", `href="/docs/intro"`, `id="preview"`, "The power of Dart"} {
		if !strings.Contains(html, want) {
			t.Fatalf("missing %q in %s", want, html)
		}
	}
}

func TestPageWithoutPreview(t *testing.T) {
	var buf bytes.Buffer
	if err := Page(HeroProps{Title: "nyxx"}, nil, nil).Render(context.Background(), &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(buf.String(), "preview") || strings.Contains(buf.String(), "Get started") {
		t.Fatalf("unexpected optional sections: %s", buf.String())
	}
}
