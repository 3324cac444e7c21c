// cmd/server/server.go
package main

import (
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codr1/nyxxdocs/internal/api"
	"github.com/codr1/nyxxdocs/internal/api/nav"
	"github.com/codr1/nyxxdocs/internal/api/pages"
	"github.com/codr1/nyxxdocs/internal/api/themes"
	"github.com/codr1/nyxxdocs/internal/theme"
)

func newServer(config *Config, a *app) *http.Server {
	router := http.NewServeMux()

	// Setup middleware chain
	handler := api.ChainMiddleware(
		router,
		api.WithLogging,
		api.WithRecovery,
		api.WithRequestID,
		api.WithContentType,
	)

	themes.InitHandlers(themes.Deps{
		Sync:       a.sync,
		Limiter:    a.limiter,
		Resolver:   theme.Resolver{Fallback: theme.ParseMode(a.site.Theme.DefaultMode)},
		CookieName: a.site.Theme.CookieName,
	})
	pages.InitHandlers(a.site)
	nav.InitHandlers(a.site)

	registerRoutes(router, config.StaticDir)

	return &http.Server{
		Addr:        ":" + config.Port,
		Handler:     handler,
		ReadTimeout: 15 * time.Second,
		// No WriteTimeout: the theme event stream stays open.
		IdleTimeout: 60 * time.Second,
	}
}

func registerRoutes(mux *http.ServeMux, staticDir string) {
	mux.HandleFunc("/", pages.HandleHome)
	mux.HandleFunc("GET /components", pages.HandleComponentsPage)
	mux.HandleFunc("GET /examples/{name}", pages.HandleExample)

	// Health check
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Theme routes
	mux.HandleFunc("/api/v1/theme", themes.HandleTheme)
	mux.HandleFunc("GET /api/v1/theme/stream", themes.HandleThemeStream)

	// Mock UI routes
	mux.HandleFunc(pages.ToggleURL, pages.HandleSelectToggle)

	// Navigation routes
	mux.HandleFunc("/api/v1/nav/menu", nav.HandleMenu)
	mux.HandleFunc("/api/v1/nav/menu/close", nav.HandleMenuClose)
	mux.HandleFunc("/api/v1/nav/search", nav.HandleSearch)

	fs := http.FileServer(http.Dir(staticDir))
	mux.Handle("/static/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Ctx(r.Context()).Debug().
			Str("path", r.URL.Path).
			Str("static_dir", staticDir).
			Msg("Static file request")
		http.StripPrefix("/static/", fs).ServeHTTP(w, r)
	}))
}
