package nav

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/codr1/nyxxdocs/internal/config"
)

func TestHandleSearch(t *testing.T) {
	c := config.Default()
	c.Plugins.SearchLocal.SearchResultLimits = 2
	InitHandlers(c)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/nav/search?q=select", nil)
	recorder := httptest.NewRecorder()

	HandleSearch(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", recorder.Code)
	}

	var results []SearchResult
	if err := json.Unmarshal(recorder.Body.Bytes(), &results); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d: %+v", len(results), results)
	}
	for _, result := range results {
		if !strings.Contains(result.Name, "select") {
			t.Fatalf("unexpected result %+v", result)
		}
	}
}

func TestHandleSearchEmpty(t *testing.T) {
	recorder := httptest.NewRecorder()
	HandleSearch(recorder, httptest.NewRequest(http.MethodGet, "/api/v1/nav/search", nil))
	if strings.TrimSpace(recorder.Body.String()) != "[]" {
		t.Fatalf("expected empty list, got %s", recorder.Body.String())
	}
}

func TestSearchRanksTitles(t *testing.T) {
	results := Search("ping", 0)
	if len(results) == 0 {
		t.Fatalf("expected results for ping")
	}
	noMatch := Search("zzz-not-there", 0)
	if len(noMatch) != 0 {
		t.Fatalf("expected no results, got %+v", noMatch)
	}
}

func TestHandleMenu(t *testing.T) {
	c := config.Default()
	c.Navbar.Items = []config.NavbarItem{{Type: "doc", DocID: "intro", Label: "Docs", Position: "left"}}
	InitHandlers(c)

	recorder := httptest.NewRecorder()
	HandleMenu(recorder, httptest.NewRequest(http.MethodGet, "/api/v1/nav/menu", nil))
	if recorder.Code != http.StatusOK || !strings.Contains(recorder.Body.String(), `href="/docs/intro"`) {
		t.Fatalf("menu = %d %s", recorder.Code, recorder.Body.String())
	}
}
