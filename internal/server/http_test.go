package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"atscan/internal/errors"
	"atscan/internal/store"
)

func testLogger(t *testing.T) *errors.Logger {
	t.Helper()
	logger, err := errors.New("error")
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	return logger
}

func TestMaskAPIKey(t *testing.T) {
	tests := []struct {
		name string
		key  string
		want string
	}{
		{"long key shows prefix", "abcdefgh12345678", "abcdefgh****"},
		{"short key fully masked", "short", "****"},
		{"exactly eight chars fully masked", "12345678", "****"},
		{"empty key", "", "****"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := maskAPIKey(tt.key); got != tt.want {
				t.Errorf("maskAPIKey(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestAuthMiddleware(t *testing.T) {
	okHandler := func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}

	t.Run("no keys configured skips auth", func(t *testing.T) {
		s := &Server{APIKeys: map[string]bool{}, Logger: testLogger(t)}
		rec := httptest.NewRecorder()
		s.authMiddleware(okHandler)(rec, httptest.NewRequest(http.MethodPost, "/scan", nil))
		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", rec.Code)
		}
	})

	s := &Server{
		APIKeys: map[string]bool{"valid-key-12345678": true},
		Logger:  testLogger(t),
	}

	t.Run("valid X-API-Key header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/scan", nil)
		req.Header.Set("X-API-Key", "valid-key-12345678")
		rec := httptest.NewRecorder()
		s.authMiddleware(okHandler)(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", rec.Code)
		}
	})

	t.Run("valid bearer token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/scan", nil)
		req.Header.Set("Authorization", "Bearer valid-key-12345678")
		rec := httptest.NewRecorder()
		s.authMiddleware(okHandler)(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", rec.Code)
		}
	})

	t.Run("missing key rejected", func(t *testing.T) {
		rec := httptest.NewRecorder()
		s.authMiddleware(okHandler)(rec, httptest.NewRequest(http.MethodPost, "/scan", nil))
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("invalid key rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/scan", nil)
		req.Header.Set("X-API-Key", "wrong-key")
		rec := httptest.NewRecorder()
		s.authMiddleware(okHandler)(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})
}

func TestRateLimiter(t *testing.T) {
	t.Run("allows within burst then throttles", func(t *testing.T) {
		rl := NewRateLimiter(60, time.Minute, 2, testLogger(t))
		defer rl.Close()

		if !rl.Allow("client-a") {
			t.Error("first request should be allowed")
		}
		if !rl.Allow("client-a") {
			t.Error("second request within burst should be allowed")
		}
		if rl.Allow("client-a") {
			t.Error("third immediate request should exceed the burst")
		}
		// Independent keys get independent buckets.
		if !rl.Allow("client-b") {
			t.Error("different key should not share the exhausted bucket")
		}
	})

	t.Run("stats reflect configuration", func(t *testing.T) {
		rl := NewRateLimiter(120, time.Minute, 5, testLogger(t))
		defer rl.Close()
		rl.Allow("key1")
		rl.Allow("key2")

		stats := rl.GetStats()
		if stats["active_limiters"] != 2 {
			t.Errorf("active_limiters = %v, want 2", stats["active_limiters"])
		}
		if stats["rate_per_minute"] != 120.0 {
			t.Errorf("rate_per_minute = %v, want 120", stats["rate_per_minute"])
		}
		if stats["burst_capacity"] != 5 {
			t.Errorf("burst_capacity = %v, want 5", stats["burst_capacity"])
		}
	})
}

func TestGetRateLimitKey(t *testing.T) {
	t.Run("api key preferred over ip", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/scan", nil)
		req.Header.Set("X-API-Key", "abc123")
		if got := getRateLimitKey(req, true, true); got != "api:abc123" {
			t.Errorf("key = %q, want api:abc123", got)
		}
	})

	t.Run("bearer token used when header absent", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/scan", nil)
		req.Header.Set("Authorization", "Bearer tok456")
		if got := getRateLimitKey(req, true, false); got != "api:tok456" {
			t.Errorf("key = %q, want api:tok456", got)
		}
	})

	t.Run("falls back to ip", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/scan", nil)
		req.RemoteAddr = "192.0.2.7:54321"
		if got := getRateLimitKey(req, true, true); got != "ip:192.0.2.7" {
			t.Errorf("key = %q, want ip:192.0.2.7", got)
		}
	})

	t.Run("no strategy enabled", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/scan", nil)
		if got := getRateLimitKey(req, false, false); got != "" {
			t.Errorf("key = %q, want empty", got)
		}
	})
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		want       string
	}{
		{"remote addr", "203.0.113.5:1234", nil, "203.0.113.5"},
		{"x-forwarded-for first entry", "10.0.0.1:1234",
			map[string]string{"X-Forwarded-For": "198.51.100.2, 10.0.0.1"}, "198.51.100.2"},
		{"invalid forwarded entries skipped", "10.0.0.1:1234",
			map[string]string{"X-Forwarded-For": "not-an-ip, 198.51.100.9"}, "198.51.100.9"},
		{"x-real-ip", "10.0.0.1:1234",
			map[string]string{"X-Real-IP": "198.51.100.3"}, "198.51.100.3"},
		{"invalid x-real-ip ignored", "203.0.113.9:1234",
			map[string]string{"X-Real-IP": "garbage"}, "203.0.113.9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			if got := getClientIP(req); got != tt.want {
				t.Errorf("getClientIP = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseCollection(t *testing.T) {
	tests := []struct {
		segment string
		want    store.Collection
		ok      bool
	}{
		{"cvs", store.CollectionCVs, true},
		{"job_descriptions", store.CollectionJobDescriptions, true},
		{"unknown", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run("segment "+tt.segment, func(t *testing.T) {
			got, ok := parseCollection(tt.segment)
			if ok != tt.ok || got != tt.want {
				t.Errorf("parseCollection(%q) = (%q, %v), want (%q, %v)", tt.segment, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestRequestSizeLimitMiddleware(t *testing.T) {
	s := &Server{MaxRequestSize: 16, Logger: testLogger(t)}

	handler := s.requestSizeLimitMiddleware()(func(w http.ResponseWriter, r *http.Request) {
		var payload ScanRequest
		if err := parseJSONRequest(r, &payload); err != nil {
			writeErrorResponse(w, "Invalid request", err.Error(), http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	t.Run("oversized body rejected", func(t *testing.T) {
		body := `{"content":"` + strings.Repeat("a", 64) + `"}`
		req := httptest.NewRequest(http.MethodPost, "/scan", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		handler(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400 for oversized body", rec.Code)
		}
	})

	t.Run("small body passes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/scan", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		handler(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", rec.Code)
		}
	})
}
