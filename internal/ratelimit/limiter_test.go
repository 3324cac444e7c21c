package ratelimit

import (
	"net/http"
	"sync"
	"testing"
	"time"
)

// mockClock is a controllable clock for testing.
type mockClock struct {
	mu  sync.Mutex
	now time.Time
}

func newMockClock() *mockClock {
	return &mockClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *mockClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *mockClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestAllow_WindowLimit(t *testing.T) {
	clock := newMockClock()
	limiter := New(&Config{Window: time.Minute, MaxPerIP: 3, Clock: clock})
	defer limiter.Close()

	for i := 0; i < 3; i++ {
		result := limiter.Allow("203.0.113.1")
		if !result.Allowed {
			t.Fatalf("write %d should be allowed, got %s", i+1, result.Reason)
		}
		if result.Remaining != 2-i {
			t.Errorf("write %d remaining = %d, want %d", i+1, result.Remaining, 2-i)
		}
	}

	clock.Advance(20 * time.Second)
	result := limiter.Allow("203.0.113.1")
	if result.Allowed {
		t.Fatal("fourth write in the window should be blocked")
	}
	if result.Reason != "window_limit" {
		t.Errorf("Expected reason 'window_limit', got '%s'", result.Reason)
	}
	if result.RetryAfter != 40*time.Second {
		t.Errorf("RetryAfter = %v, want 40s", result.RetryAfter)
	}

	clock.Advance(40 * time.Second)
	if result := limiter.Allow("203.0.113.1"); !result.Allowed {
		t.Fatal("write in a new window should be allowed")
	}
}

func TestAllow_SeparateIPs(t *testing.T) {
	clock := newMockClock()
	limiter := New(&Config{Window: time.Minute, MaxPerIP: 1, Clock: clock})
	defer limiter.Close()

	if !limiter.Allow("203.0.113.1").Allowed {
		t.Fatal("first IP should be allowed")
	}
	if !limiter.Allow("203.0.113.2").Allowed {
		t.Fatal("second IP has its own window")
	}
	if limiter.Allow("203.0.113.1").Allowed {
		t.Fatal("first IP should now be limited")
	}
}

func TestCleanup_DropsExpiredWindows(t *testing.T) {
	clock := newMockClock()
	limiter := New(&Config{Window: time.Minute, MaxPerIP: 5, Clock: clock})
	defer limiter.Close()

	limiter.Allow("203.0.113.1")
	clock.Advance(30 * time.Second)
	limiter.Allow("203.0.113.2")

	clock.Advance(40 * time.Second)
	limiter.cleanup()
	if got := limiter.tracked(); got != 1 {
		t.Fatalf("tracked = %d, want 1", got)
	}
}

func TestAllowRequest_UsesClientIP(t *testing.T) {
	limiter := New(&Config{MaxPerIP: 1, Clock: newMockClock()})
	defer limiter.Close()

	r, _ := http.NewRequest("PUT", "/api/v1/theme", nil)
	r.RemoteAddr = "192.168.1.100:54321"
	r.Header.Set("X-Forwarded-For", "1.2.3.4")

	result, ip := limiter.AllowRequest(r)
	if !result.Allowed || ip != "192.168.1.100" {
		t.Fatalf("AllowRequest = %+v, %q", result, ip)
	}
	if result, _ := limiter.AllowRequest(r); result.Allowed {
		t.Fatal("second request should be limited")
	}
}

func TestGetClientIP_TrustProxy(t *testing.T) {
	tests := []struct {
		name       string
		headers    map[string]string
		remoteAddr string
		trustProxy bool
		expected   string
	}{
		{
			name:       "TrustProxy=true, XFF rightmost public IP",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.50, 10.0.0.1"},
			remoteAddr: "10.0.0.1:12345",
			trustProxy: true,
			expected:   "203.0.113.50",
		},
		{
			name:       "TrustProxy=true, XFF all private",
			headers:    map[string]string{"X-Forwarded-For": "192.168.1.1, 10.0.0.1"},
			remoteAddr: "10.0.0.1:12345",
			trustProxy: true,
			expected:   "10.0.0.1",
		},
		{
			name:       "TrustProxy=true, X-Real-IP",
			headers:    map[string]string{"X-Real-IP": "203.0.113.51"},
			remoteAddr: "10.0.0.1:12345",
			trustProxy: true,
			expected:   "203.0.113.51",
		},
		{
			name:       "TrustProxy=false, ignores XFF",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.50"},
			remoteAddr: "192.168.1.100:54321",
			trustProxy: false,
			expected:   "192.168.1.100",
		},
		{
			name:       "RemoteAddr without port",
			headers:    map[string]string{},
			remoteAddr: "192.168.1.100",
			trustProxy: false,
			expected:   "192.168.1.100",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := http.NewRequest("GET", "/", nil)
			r.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}

			got := GetClientIP(r, tt.trustProxy)
			if got != tt.expected {
				t.Errorf("GetClientIP() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestNew_NilConfig(t *testing.T) {
	limiter := New(nil)
	defer limiter.Close()

	if limiter.config.Window != time.Minute || limiter.config.MaxPerIP != 30 {
		t.Error("New(nil) should use default config")
	}
}

func TestLimiter_Close(t *testing.T) {
	limiter := New(nil)
	limiter.Allow("1.2.3.4")

	done := make(chan struct{})
	go func() {
		limiter.Close()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(1 * time.Second):
		t.Error("Close() should not hang")
	}
}

func TestConcurrentAccess(t *testing.T) {
	clock := newMockClock()
	limiter := New(&Config{Window: time.Minute, MaxPerIP: 50, Clock: clock})
	defer limiter.Close()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				if limiter.Allow("192.168.1.1").Allowed {
					mu.Lock()
					allowed++
					mu.Unlock()
				}
			}
		}()
	}
	wg.Wait()

	if allowed != 50 {
		t.Fatalf("allowed = %d, want exactly 50", allowed)
	}
}

func TestIsPrivateIP(t *testing.T) {
	tests := []struct {
		ip       string
		expected bool
	}{
		{"10.1.2.3", true},
		{"192.168.0.1", true},
		{"::ffff:192.168.1.1", true},
		{"::1", true},
		{"203.0.113.1", false},
		{"not-an-ip", false},
	}
	for _, tt := range tests {
		if got := isPrivateIP(tt.ip); got != tt.expected {
			t.Errorf("isPrivateIP(%q) = %v, want %v", tt.ip, got, tt.expected)
		}
	}
}
