// internal/api/themes/handlers.go
package themes

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codr1/nyxxdocs/internal/api/apiutil"
	"github.com/codr1/nyxxdocs/internal/api/htmx"
	"github.com/codr1/nyxxdocs/internal/ratelimit"
	"github.com/codr1/nyxxdocs/internal/theme"
)

const (
	themeWriteTimeout = 5 * time.Second
	themeField        = "theme"
	cookieMaxAge      = 365 * 24 * 60 * 60
	streamKeepAlive   = 25 * time.Second
)

// Deps is what the theme routes need. Limiter may be nil to disable rate
// limiting.
type Deps struct {
	Sync       *theme.Sync
	Limiter    *ratelimit.Limiter
	Resolver   theme.Resolver
	CookieName string
}

var (
	depsMu sync.RWMutex
	deps   *Deps
)

type themeRequest struct {
	Theme string `json:"theme"`
}

type themeResponse struct {
	Theme string `json:"theme"`
}

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(d Deps) {
	if d.Sync == nil {
		return
	}
	if d.CookieName == "" {
		d.CookieName = theme.Key
	}
	depsMu.Lock()
	deps = &d
	depsMu.Unlock()
}

func loadDeps() *Deps {
	depsMu.RLock()
	defer depsMu.RUnlock()
	return deps
}

// Environment is the theme environment for r using the configured store and
// cookie.
func Environment(r *http.Request) theme.Environment {
	d := loadDeps()
	if d == nil {
		return theme.RequestEnvironment{Request: r}
	}
	return theme.RequestEnvironment{Request: r, Store: d.Sync.Store(), CookieName: d.CookieName}
}

// ModeForRequest resolves the viewer's mode, honoring an explicit override.
func ModeForRequest(r *http.Request, explicit *bool) theme.Mode {
	d := loadDeps()
	resolver := theme.Resolver{Fallback: theme.DefaultMode}
	if d != nil {
		resolver = d.Resolver
	}
	return resolver.Resolve(r.Context(), explicit, Environment(r))
}

// /api/v1/theme
func HandleTheme(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet, http.MethodHead:
		handleThemeGet(w, r)
	case http.MethodPut, http.MethodPost:
		handleThemeWrite(w, r)
	default:
		w.Header().Set("Allow", "GET, HEAD, PUT, POST")
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func handleThemeGet(w http.ResponseWriter, r *http.Request) {
	mode := ModeForRequest(r, nil)
	if err := apiutil.WriteJSON(w, http.StatusOK, themeResponse{Theme: mode.String()}); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to write theme response")
	}
}

func handleThemeWrite(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	d := loadDeps()
	if d == nil {
		logger.Error().Msg("Theme handlers not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if d.Limiter != nil {
		result, ip := d.Limiter.AllowRequest(r)
		if !result.Allowed {
			ratelimit.LogRateLimitExceeded(r.Context(), r.URL.Path, ip, result)
			w.Header().Set("Retry-After", fmt.Sprint(retryAfterSeconds(result.RetryAfter)))
			http.Error(w, "Too many theme changes, try again later", http.StatusTooManyRequests)
			return
		}
	}

	mode, err := modeFromRequest(r)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), themeWriteTimeout)
	defer cancel()

	if err := d.Sync.Write(ctx, mode); err != nil {
		apiutil.WriteError(w, r, apiutil.HandlerError{
			Status:  http.StatusInternalServerError,
			Message: "Failed to save theme",
			Err:     err,
		})
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     d.CookieName,
		Value:    mode.String(),
		Path:     "/",
		MaxAge:   cookieMaxAge,
		SameSite: http.SameSiteLaxMode,
	})
	logger.Info().Str("theme", mode.String()).Msg("Theme preference updated")

	if htmx.IsRequest(r) {
		if err := htmx.Trigger(w, "theme-changed", mode.String()); err != nil {
			logger.Warn().Err(err).Msg("Failed to set htmx trigger")
		}
		w.WriteHeader(http.StatusNoContent)
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, themeResponse{Theme: mode.String()}); err != nil {
		logger.Error().Err(err).Msg("Failed to write theme response")
	}
}

func modeFromRequest(r *http.Request) (theme.Mode, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var req themeRequest
		if err := apiutil.DecodeJSON(r, &req); err != nil {
			return theme.DefaultMode, apiutil.HandlerError{
				Status:  http.StatusBadRequest,
				Message: "Invalid JSON body",
				Err:     err,
			}
		}
		return apiutil.ParseModeField(req.Theme, themeField)
	}

	if err := r.ParseForm(); err != nil {
		return theme.DefaultMode, apiutil.HandlerError{
			Status:  http.StatusBadRequest,
			Message: "Invalid form body",
			Err:     err,
		}
	}
	return apiutil.ParseModeField(r.FormValue(themeField), themeField)
}

func retryAfterSeconds(d time.Duration) int {
	seconds := int(math.Ceil(d.Seconds()))
	if seconds < 1 {
		return 1
	}
	return seconds
}

// /api/v1/theme/stream
//
// Sends the viewer's mode, then one "theme" event per change of the shared
// preference, until the client goes away. A viewer with a theme cookie has
// their own preference and only gets the first event.
func HandleThemeStream(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	d := loadDeps()
	if d == nil {
		logger.Error().Msg("Theme handlers not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	controller := http.NewResponseController(w)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	current := ModeForRequest(r, nil)
	if err := writeThemeEvent(w, controller, current); err != nil {
		logger.Debug().Err(err).Msg("Theme stream closed")
		return
	}

	// nil blocks forever, so cookie holders only see keep-alives.
	var updates <-chan theme.Mode
	if !hasThemeCookie(r, d.CookieName) {
		updates = d.Sync.Cell().Subscribe(r.Context())
	}
	keepAlive := time.NewTicker(streamKeepAlive)
	defer keepAlive.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case mode, ok := <-updates:
			if !ok {
				return
			}
			if mode == current {
				continue
			}
			current = mode
			if err := writeThemeEvent(w, controller, mode); err != nil {
				logger.Debug().Err(err).Msg("Theme stream closed")
				return
			}
		case <-keepAlive.C:
			if _, err := fmt.Fprint(w, ": keep-alive\n\n"); err != nil {
				return
			}
			if err := controller.Flush(); err != nil {
				logger.Warn().Err(err).Msg("Theme stream cannot flush")
				return
			}
		}
	}
}

func writeThemeEvent(w http.ResponseWriter, controller *http.ResponseController, mode theme.Mode) error {
	if _, err := fmt.Fprintf(w, "event: theme\ndata: %s\n\n", mode); err != nil {
		return err
	}
	return controller.Flush()
}

func hasThemeCookie(r *http.Request, name string) bool {
	_, err := r.Cookie(name)
	return err == nil
}
