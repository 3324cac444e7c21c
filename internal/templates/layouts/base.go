// Package layouts holds the page shell shared by every HTML route.
package layouts

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/a-h/templ"

	"github.com/codr1/nyxxdocs/internal/config"
	"github.com/codr1/nyxxdocs/internal/models"
	"github.com/codr1/nyxxdocs/internal/theme"
)

type PageProps struct {
	Config *config.Config
	Mode   theme.Mode
	// Title is prefixed to the site title when set.
	Title string
	// Palette overrides the built-in colors for Mode.
	Palette *models.Palette
	Now     time.Time
}

type writer struct {
	w   io.Writer
	ctx context.Context
	err error
}

func (p *writer) raw(s string) {
	if p.err != nil {
		return
	}
	_, p.err = io.WriteString(p.w, s)
}

func (p *writer) text(s string) {
	p.raw(templ.EscapeString(s))
}

func (p *writer) attr(name, value string) {
	p.raw(" " + name + `="` + templ.EscapeString(value) + `"`)
}

func (p *writer) href(value string) {
	p.attr("href", string(templ.URL(value)))
}

func (p *writer) render(c templ.Component) {
	if p.err != nil || c == nil {
		return
	}
	p.err = c.Render(p.ctx, p.w)
}

// Base wraps content in the document, navbar and footer.
func Base(props PageProps, content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		cfg := props.Config
		if cfg == nil {
			cfg = config.Default()
		}
		now := props.Now
		if now.IsZero() {
			now = time.Now()
		}

		title := cfg.Site.Title
		if props.Title != "" {
			title = props.Title + " | " + title
		}

		p := &writer{w: w, ctx: ctx}
		p.raw("<!DOCTYPE html><html lang=\"en\"")
		p.attr("data-theme", props.Mode.String())
		p.raw("><head><meta charset=\"utf-8\"><meta name=\"viewport\" content=\"width=device-width, initial-scale=1\"><title>")
		p.text(title)
		p.raw("</title>")
		for _, tag := range cfg.Metadata {
			p.raw("<meta")
			p.attr("name", tag.Name)
			p.attr("content", tag.Content)
			p.raw(">")
		}
		if cfg.Site.Favicon != "" {
			p.raw(`<link rel="icon"`)
			p.href(siteLink(cfg, cfg.Site.Favicon))
			p.raw(">")
		}
		for _, tag := range cfg.Plugins.PWA.PWAHead {
			if tag.TagName != "link" {
				continue
			}
			p.raw("<link")
			p.attr("rel", tag.Rel)
			p.href(siteLink(cfg, tag.Href))
			p.raw(">")
		}
		p.raw(`<link rel="stylesheet" href="/static/css/discord.css"><script src="/static/js/htmx.min.js"></script><style>`)
		p.raw(themeCSSVars(props.Mode, props.Palette))
		p.raw("</style></head><body>")

		writeNavbar(p, cfg)
		p.raw(`<main id="main-content">`)
		p.render(content)
		p.raw("</main>")
		writeFooter(p, cfg, now)

		p.raw("<script>")
		p.raw(themeScript())
		p.raw("</script></body></html>")
		return p.err
	})
}

func writeNavbar(p *writer, cfg *config.Config) {
	p.raw(`<nav class="navbar"><a class="navbar-brand"`)
	p.href(cfg.Site.BaseURL)
	p.raw(">")
	if cfg.Navbar.Logo.Src != "" {
		p.raw("<img")
		p.attr("src", string(templ.URL(siteLink(cfg, cfg.Navbar.Logo.Src))))
		p.attr("alt", cfg.Navbar.Logo.Alt)
		p.raw(">")
	}
	p.raw("<b>")
	p.text(cfg.Navbar.Title)
	p.raw("</b></a>")

	for _, position := range []string{"left", "right"} {
		p.raw(`<div class="navbar-items navbar-items-` + position + `">`)
		for _, item := range cfg.Navbar.Items {
			if item.Position != position || item.Type == "localeDropdown" {
				continue
			}
			p.raw(`<a class="navbar-item"`)
			p.href(navbarTarget(cfg, item))
			p.raw(">")
			p.text(item.Label)
			p.raw("</a>")
		}
		p.raw("</div>")
	}
	p.raw(`<button type="button" class="theme-toggle" id="theme-toggle" aria-label="Toggle dark mode">◐</button></nav>`)
}

func writeFooter(p *writer, cfg *config.Config, now time.Time) {
	p.raw(`<footer class="footer footer-` + templ.EscapeString(cfg.Footer.Style) + `"><div class="footer-links">`)
	for _, column := range cfg.Footer.Links {
		p.raw(`<div class="footer-column"><h4>`)
		p.text(column.Title)
		p.raw("</h4><ul>")
		for _, link := range column.Items {
			target := link.Href
			if target == "" {
				target = siteLink(cfg, link.To)
			}
			p.raw("<li><a")
			p.href(target)
			p.raw(">")
			p.text(link.Label)
			p.raw("</a></li>")
		}
		p.raw("</ul></div>")
	}
	p.raw(`</div><div class="footer-copyright">`)
	p.text(cfg.Copyright(now))
	p.raw("</div></footer>")
}

func navbarTarget(cfg *config.Config, item config.NavbarItem) string {
	switch {
	case item.Href != "":
		return item.Href
	case item.Type == "doc":
		return siteLink(cfg, strings.TrimSuffix(cfg.Plugins.SearchLocal.DocsRouteBasePath, "/")+"/"+item.DocID)
	default:
		return siteLink(cfg, item.To)
	}
}

// siteLink joins a site-relative path onto the configured base URL.
func siteLink(cfg *config.Config, path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return strings.TrimSuffix(cfg.Site.BaseURL, "/") + "/" + strings.TrimPrefix(path, "/")
}

// themeScript follows the stream and toggles through the API, which sets
// the cookie. Broadcast values are applied but never written to the cookie.
func themeScript() string {
	return `(function(){
var root=document.documentElement;
function apply(mode){
root.dataset.theme=mode;
document.querySelectorAll(".discord-messages,.discord-multiselect").forEach(function(el){el.classList.toggle("discord-light-theme",mode==="light");});
}
var toggle=document.getElementById("theme-toggle");
if(toggle){toggle.addEventListener("click",function(){
var next=root.dataset.theme==="light"?"dark":"light";
apply(next);
fetch("/api/v1/theme",{method:"PUT",headers:{"Content-Type":"application/json"},body:JSON.stringify({theme:next})});
});}
if(window.EventSource){
var source=new EventSource("/api/v1/theme/stream");
source.addEventListener("theme",function(e){
apply(e.data==="light"?"light":"dark");
});
}
})();`
}

// NavMenu is the collapsed-navbar sidebar fetched by htmx on small screens.
func NavMenu(cfg *config.Config) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &writer{w: w, ctx: ctx}
		p.raw(`<div class="navbar-sidebar" id="navbar-sidebar"><button type="button" class="navbar-sidebar-close" hx-get="/api/v1/nav/menu/close" hx-target="#navbar-sidebar" hx-swap="outerHTML">×</button><ul>`)
		for _, item := range cfg.Navbar.Items {
			if item.Type == "localeDropdown" {
				continue
			}
			p.raw(`<li><a class="menu-link"`)
			p.href(navbarTarget(cfg, item))
			p.raw(">")
			p.text(item.Label)
			p.raw("</a></li>")
		}
		p.raw("</ul></div>")
		return p.err
	})
}
