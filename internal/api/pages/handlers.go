// internal/api/pages/handlers.go
package pages

import (
	"errors"
	"net/http"
	"strings"
	"sync"

	"github.com/a-h/templ"
	"github.com/rs/zerolog/log"

	"github.com/codr1/nyxxdocs/internal/api/apiutil"
	"github.com/codr1/nyxxdocs/internal/api/htmx"
	"github.com/codr1/nyxxdocs/internal/api/themes"
	"github.com/codr1/nyxxdocs/internal/config"
	"github.com/codr1/nyxxdocs/internal/templates/components/home"
	"github.com/codr1/nyxxdocs/internal/templates/components/mock"
	"github.com/codr1/nyxxdocs/internal/templates/layouts"
	"github.com/codr1/nyxxdocs/internal/theme"
)

const (
	ToggleURL       = "/api/v1/mock/select/toggle"
	exampleParam    = "name"
	themeQueryKey   = "theme"
	homePreviewName = "base-command"
)

var (
	cfgMu sync.RWMutex
	cfg   *config.Config
)

func InitHandlers(c *config.Config) {
	cfgMu.Lock()
	cfg = c
	cfgMu.Unlock()
}

func loadConfig() *config.Config {
	cfgMu.RLock()
	defer cfgMu.RUnlock()
	if cfg == nil {
		return config.Default()
	}
	return cfg
}

// requestMode honors ?theme= before the viewer's stored preference.
func requestMode(r *http.Request) (theme.Mode, error) {
	explicit, err := apiutil.QueryMode(r, themeQueryKey)
	if err != nil {
		return theme.DefaultMode, err
	}
	return themes.ModeForRequest(r, explicit), nil
}

func renderPage(w http.ResponseWriter, r *http.Request, mode theme.Mode, title string, content templ.Component) {
	page := layouts.Base(layouts.PageProps{Config: loadConfig(), Mode: mode, Title: title}, content)
	apiutil.RenderHTMLComponent(r.Context(), w, page, nil, "Failed to render page", "Failed to render page")
}

// /
func HandleHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	mode, err := requestMode(r)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	c := loadConfig()
	preview, err := mock.ExampleComponent(homePreviewName, mock.RenderOptions{Mode: mode, ToggleURL: ToggleURL})
	if err != nil {
		log.Ctx(r.Context()).Warn().Err(err).Str("example", homePreviewName).Msg("Home preview unavailable")
	}
	hero := home.HeroProps{
		Title:   c.Site.Title,
		Tagline: c.Site.Tagline,
		DocsURL: strings.TrimSuffix(c.Site.BaseURL, "/") + c.Plugins.SearchLocal.DocsRouteBasePath,
	}
	renderPage(w, r, mode, "", home.Page(hero, home.Features, preview))
}

// /components
func HandleComponentsPage(w http.ResponseWriter, r *http.Request) {
	mode, err := requestMode(r)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	gallery := mock.Gallery(mock.RenderOptions{Mode: mode, ToggleURL: ToggleURL})
	if htmx.IsRequest(r) {
		apiutil.RenderHTMLComponent(r.Context(), w, gallery, nil, "Failed to render gallery", "Failed to render gallery")
		return
	}
	renderPage(w, r, mode, "Components", gallery)
}

// /examples/{name}
func HandleExample(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue(exampleParam)
	mode, err := requestMode(r)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	component, err := mock.ExampleComponent(name, mock.RenderOptions{Mode: mode, ToggleURL: ToggleURL})
	if err != nil {
		if errors.Is(err, mock.ErrUnknownExample) {
			http.Error(w, "Example not found", http.StatusNotFound)
			return
		}
		apiutil.WriteError(w, r, err)
		return
	}

	if htmx.IsRequest(r) {
		apiutil.RenderHTMLComponent(r.Context(), w, component, nil, "Failed to render example", "Failed to render example")
		return
	}
	e, _ := mock.Lookup(name)
	renderPage(w, r, mode, e.Title, component)
}

// /api/v1/mock/select/toggle
func HandleSelectToggle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	query := r.URL.Query()
	wasOpen, err := apiutil.ParseBoolField(query.Get("open"), "open")
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	mode, err := requestMode(r)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	component, menu, err := mock.ToggleSelect(query.Get("example"), wasOpen, mock.RenderOptions{Mode: mode, ToggleURL: ToggleURL})
	if err != nil {
		if errors.Is(err, mock.ErrUnknownExample) || errors.Is(err, mock.ErrNoSelectMenu) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		apiutil.WriteError(w, r, err)
		return
	}

	log.Ctx(r.Context()).Debug().
		Str("example", query.Get("example")).
		Str("state", menu.State.String()).
		Msg("Select menu toggled")
	apiutil.RenderHTMLComponent(r.Context(), w, component, nil, "Failed to render select menu", "Failed to render select menu")
}
