package themes

// NOTE: Tests cannot use t.Parallel() due to shared package state.

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/codr1/nyxxdocs/internal/ratelimit"
	"github.com/codr1/nyxxdocs/internal/theme"
)

func setupHandlers(t *testing.T, limiter *ratelimit.Limiter) (*theme.Sync, *theme.MemoryStore) {
	t.Helper()
	store := theme.NewMemoryStore()
	cell := theme.NewCell(theme.Dark)
	t.Cleanup(cell.Close)
	syncer := theme.NewSync(store, cell)
	InitHandlers(Deps{Sync: syncer, Limiter: limiter, CookieName: "theme"})
	return syncer, store
}

func decodeTheme(t *testing.T, recorder *httptest.ResponseRecorder) string {
	t.Helper()
	var resp themeResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v (%s)", err, recorder.Body.String())
	}
	return resp.Theme
}

func TestHandleThemeGet(t *testing.T) {
	_, store := setupHandlers(t, nil)

	recorder := httptest.NewRecorder()
	HandleTheme(recorder, httptest.NewRequest(http.MethodGet, "/api/v1/theme", nil))
	if recorder.Code != http.StatusOK || decodeTheme(t, recorder) != "dark" {
		t.Fatalf("default GET = %d %s", recorder.Code, recorder.Body.String())
	}

	if err := store.Set(context.Background(), theme.Key, "light"); err != nil {
		t.Fatalf("seed store: %v", err)
	}
	recorder = httptest.NewRecorder()
	HandleTheme(recorder, httptest.NewRequest(http.MethodGet, "/api/v1/theme", nil))
	if got := decodeTheme(t, recorder); got != "light" {
		t.Fatalf("stored preference ignored: %s", got)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/theme", nil)
	req.AddCookie(&http.Cookie{Name: "theme", Value: "dark"})
	recorder = httptest.NewRecorder()
	HandleTheme(recorder, req)
	if got := decodeTheme(t, recorder); got != "dark" {
		t.Fatalf("cookie should win over store: %s", got)
	}
}

func TestHandleThemeWriteJSON(t *testing.T) {
	syncer, store := setupHandlers(t, nil)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/theme", strings.NewReader(`{"theme":"light"}`))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	HandleTheme(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", recorder.Code, recorder.Body.String())
	}
	if got := decodeTheme(t, recorder); got != "light" {
		t.Fatalf("response theme = %s", got)
	}
	if value, ok, _ := store.Get(context.Background(), theme.Key); !ok || value != "light" {
		t.Fatalf("store = %q, %v", value, ok)
	}
	if syncer.Cell().Get() != theme.Light {
		t.Fatalf("cell not updated")
	}

	cookies := recorder.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != "theme" || cookies[0].Value != "light" {
		t.Fatalf("cookies = %+v", cookies)
	}
}

func TestHandleThemeWriteForm(t *testing.T) {
	syncer, _ := setupHandlers(t, nil)
	syncer.Cell().Set(theme.Light)

	form := url.Values{"theme": {"dark"}}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/theme", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	recorder := httptest.NewRecorder()
	HandleTheme(recorder, req)

	if recorder.Code != http.StatusOK || syncer.Cell().Get() != theme.Dark {
		t.Fatalf("form write failed: %d %s", recorder.Code, recorder.Body.String())
	}
}

func TestHandleThemeWriteHTMX(t *testing.T) {
	setupHandlers(t, nil)

	form := url.Values{"theme": {"light"}}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/theme", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("HX-Request", "true")
	recorder := httptest.NewRecorder()
	HandleTheme(recorder, req)

	if recorder.Code != http.StatusNoContent {
		t.Fatalf("status = %d", recorder.Code)
	}
	if got := recorder.Header().Get("HX-Trigger"); got != `{"theme-changed":"light"}` {
		t.Fatalf("HX-Trigger = %q", got)
	}
}

func TestHandleThemeWriteInvalid(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		body        string
	}{
		{"unknown theme", "application/json", `{"theme":"blue"}`},
		{"malformed json", "application/json", `{"theme":`},
		{"unknown field", "application/json", `{"mode":"light"}`},
		{"empty form", "application/x-www-form-urlencoded", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			syncer, _ := setupHandlers(t, nil)
			req := httptest.NewRequest(http.MethodPut, "/api/v1/theme", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", tt.contentType)
			recorder := httptest.NewRecorder()
			HandleTheme(recorder, req)

			if recorder.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", recorder.Code)
			}
			if syncer.Cell().Get() != theme.Dark {
				t.Fatalf("invalid write changed the cell")
			}
		})
	}
}

func TestHandleThemeRateLimited(t *testing.T) {
	limiter := ratelimit.New(&ratelimit.Config{Window: time.Minute, MaxPerIP: 1})
	t.Cleanup(limiter.Close)
	setupHandlers(t, limiter)

	write := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPut, "/api/v1/theme", strings.NewReader(`{"theme":"light"}`))
		req.Header.Set("Content-Type", "application/json")
		req.RemoteAddr = "203.0.113.9:4000"
		recorder := httptest.NewRecorder()
		HandleTheme(recorder, req)
		return recorder
	}

	if recorder := write(); recorder.Code != http.StatusOK {
		t.Fatalf("first write = %d", recorder.Code)
	}
	recorder := write()
	if recorder.Code != http.StatusTooManyRequests {
		t.Fatalf("second write = %d, want 429", recorder.Code)
	}
	if recorder.Header().Get("Retry-After") == "" {
		t.Fatalf("missing Retry-After")
	}
}

func TestHandleThemeMethodNotAllowed(t *testing.T) {
	setupHandlers(t, nil)
	recorder := httptest.NewRecorder()
	HandleTheme(recorder, httptest.NewRequest(http.MethodDelete, "/api/v1/theme", nil))
	if recorder.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d", recorder.Code)
	}
}

func TestRetryAfterSeconds(t *testing.T) {
	tests := map[time.Duration]int{
		0:                       1,
		300 * time.Millisecond:  1,
		1500 * time.Millisecond: 2,
		40 * time.Second:        40,
	}
	for in, want := range tests {
		if got := retryAfterSeconds(in); got != want {
			t.Errorf("retryAfterSeconds(%v) = %d, want %d", in, got, want)
		}
	}
}

func TestHandleThemeStream(t *testing.T) {
	syncer, _ := setupHandlers(t, nil)

	server := httptest.NewServer(http.HandlerFunc(HandleThemeStream))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL, nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("stream request: %v", err)
	}
	defer resp.Body.Close()

	if got := resp.Header.Get("Content-Type"); got != "text/event-stream" {
		t.Fatalf("content type = %q", got)
	}

	reader := bufio.NewReader(resp.Body)
	nextData := func() string {
		t.Helper()
		for {
			line, err := reader.ReadString('\n')
			if err != nil {
				t.Fatalf("read stream: %v", err)
			}
			if strings.HasPrefix(line, "data: ") {
				return strings.TrimSpace(strings.TrimPrefix(line, "data: "))
			}
		}
	}

	if got := nextData(); got != "dark" {
		t.Fatalf("initial event = %q", got)
	}
	if err := syncer.Write(context.Background(), theme.Light); err != nil {
		t.Fatalf("write: %v", err)
	}
	if got := nextData(); got != "light" {
		t.Fatalf("change event = %q", got)
	}

	cancel()
	deadline := time.Now().Add(2 * time.Second)
	for syncer.Cell().Subscribers() != 0 {
		if time.Now().After(deadline) {
			t.Fatalf("subscription not released after disconnect")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestHandleThemeStreamCookieViewer(t *testing.T) {
	syncer, _ := setupHandlers(t, nil)

	server := httptest.NewServer(http.HandlerFunc(HandleThemeStream))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL, nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.AddCookie(&http.Cookie{Name: "theme", Value: "light"})
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("stream request: %v", err)
	}
	defer resp.Body.Close()

	reader := bufio.NewReader(resp.Body)
	var first string
	for first == "" {
		line, err := reader.ReadString('\n')
		if err != nil {
			t.Fatalf("read stream: %v", err)
		}
		if strings.HasPrefix(line, "data: ") {
			first = strings.TrimSpace(strings.TrimPrefix(line, "data: "))
		}
	}
	if first != "light" {
		t.Fatalf("cookie=light viewer got first event %q, want light", first)
	}
	if got := syncer.Cell().Subscribers(); got != 0 {
		t.Fatalf("cookie viewer should not follow the shared value, subscribers = %d", got)
	}
}

func TestHandleThemeStreamSkipsUnchangedValue(t *testing.T) {
	syncer, store := setupHandlers(t, nil)
	if err := store.Set(context.Background(), theme.Key, "light"); err != nil {
		t.Fatalf("seed store: %v", err)
	}
	if _, err := syncer.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	server := httptest.NewServer(http.HandlerFunc(HandleThemeStream))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL, nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("stream request: %v", err)
	}
	defer resp.Body.Close()

	reader := bufio.NewReader(resp.Body)
	var events []string
	for len(events) < 2 {
		line, err := reader.ReadString('\n')
		if err != nil {
			t.Fatalf("read stream: %v", err)
		}
		if strings.HasPrefix(line, "data: ") {
			events = append(events, strings.TrimSpace(strings.TrimPrefix(line, "data: ")))
			if len(events) == 1 {
				if err := syncer.Write(context.Background(), theme.Dark); err != nil {
					t.Fatalf("write: %v", err)
				}
			}
		}
	}
	if events[0] != "light" || events[1] != "dark" {
		t.Fatalf("events = %v, want [light dark] with no repeated light", events)
	}
}
