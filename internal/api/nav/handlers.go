// internal/api/nav/handlers.go
package nav

import (
	"net/http"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/codr1/nyxxdocs/internal/api/apiutil"
	"github.com/codr1/nyxxdocs/internal/config"
	"github.com/codr1/nyxxdocs/internal/templates/components/mock"
	"github.com/codr1/nyxxdocs/internal/templates/layouts"
)

var (
	cfgMu sync.RWMutex
	cfg   *config.Config
)

type SearchResult struct {
	Name  string `json:"name"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

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

func HandleMenu(w http.ResponseWriter, r *http.Request) {
	apiutil.RenderHTMLComponent(r.Context(), w, layouts.NavMenu(loadConfig()), nil, "Failed to render nav menu", "Failed to render menu")
}

func HandleMenuClose(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte(""))
}

// HandleSearch matches the query against example names, titles and
// descriptions. Results are capped by the search plugin's limit.
func HandleSearch(w http.ResponseWriter, r *http.Request) {
	q := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("q")))
	if q == "" {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte("[]"))
		return
	}

	limit := loadConfig().Plugins.SearchLocal.SearchResultLimits
	results := Search(q, limit)
	if err := apiutil.WriteJSON(w, http.StatusOK, results); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to write search results")
	}
}

// Search ranks title matches ahead of description-only matches. A limit of
// zero means no cap.
func Search(q string, limit int) []SearchResult {
	type scored struct {
		result SearchResult
		score  int
	}
	var hits []scored
	for _, name := range mock.Examples() {
		e, err := mock.Lookup(name)
		if err != nil {
			continue
		}
		score := 0
		switch {
		case strings.Contains(strings.ToLower(e.Title), q), strings.Contains(name, q):
			score = 2
		case strings.Contains(strings.ToLower(e.Description), q):
			score = 1
		default:
			continue
		}
		hits = append(hits, scored{
			result: SearchResult{Name: name, Title: e.Title, URL: "/components#example-" + name},
			score:  score,
		})
	}

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].score > hits[j].score })

	results := make([]SearchResult, 0, len(hits))
	for _, hit := range hits {
		if limit > 0 && len(results) == limit {
			break
		}
		results = append(results, hit.result)
	}
	return results
}
