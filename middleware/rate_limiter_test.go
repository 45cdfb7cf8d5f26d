package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/BronksDEV/luxbrasil-sub000/utils"
)

func TestClientIPGeneric_DirectRemote(t *testing.T) {
	req := httptest.NewRequest("GET", "http://example.local/", nil)
	req.RemoteAddr = "203.0.113.5:54321"
	ip := clientIPGeneric(req, nil)
	if ip != "203.0.113.5" {
		t.Fatalf("expected direct remote IP, got %s", ip)
	}
}

func TestClientIPGeneric_TrustedProxyXFF(t *testing.T) {
	req := httptest.NewRequest("GET", "http://example.local/", nil)
	req.RemoteAddr = "198.51.100.10:443"
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 198.51.100.10")
	ip := clientIPGeneric(req, []string{"198.51.100.10"})
	if ip != "203.0.113.7" {
		t.Fatalf("expected X-Forwarded-For first value, got %s", ip)
	}
}

func TestClientIPGeneric_UntrustedProxyIgnoresXFF(t *testing.T) {
	req := httptest.NewRequest("GET", "http://example.local/", nil)
	req.RemoteAddr = "198.51.100.11:443"
	req.Header.Set("X-Forwarded-For", "203.0.113.8, 198.51.100.11")
	ip := clientIPGeneric(req, []string{"198.51.100.10"})
	if ip != "198.51.100.11" {
		t.Fatalf("expected remote IP when proxy untrusted, got %s", ip)
	}
}

func TestIPRateLimiterBlocksOverLimit(t *testing.T) {
	l := &IPRateLimiter{max: 2, window: time.Minute, state: make(map[string]timestamps)}
	if ok, _ := l.allow("a"); !ok {
		t.Fatal("first request should pass")
	}
	if ok, _ := l.allow("a"); !ok {
		t.Fatal("second request should pass")
	}
	if ok, _ := l.allow("a"); ok {
		t.Fatal("third request should be limited")
	}
	// other keys are independent
	if ok, _ := l.allow("b"); !ok {
		t.Fatal("different key should pass")
	}
}

func TestUserRateLimiterSeparatesReadWrite(t *testing.T) {
	l := NewUserRateLimiter(5, 1, 60)
	handlerCalls := 0
	h := l.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerCalls++
	}))

	post := httptest.NewRequest("POST", "http://example.local/", nil)
	post.RemoteAddr = "203.0.113.9:1000"
	h.ServeHTTP(httptest.NewRecorder(), post)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, post)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second write should be limited, got %d", rec.Code)
	}

	get := httptest.NewRequest("GET", "http://example.local/", nil)
	get.RemoteAddr = "203.0.113.9:1000"
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, get)
	if rec.Code == http.StatusTooManyRequests {
		t.Fatal("reads should have their own budget")
	}
	if handlerCalls != 2 {
		t.Fatalf("expected 2 handler calls, got %d", handlerCalls)
	}
}

func TestUserRateLimiterKeysByUserID(t *testing.T) {
	l := NewUserRateLimiter(100, 2, 60)
	h := l.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	// Same user from three different addresses shares one write budget.
	addrs := []string{"203.0.113.5:1000", "198.51.100.7:2000", "192.0.2.9:3000"}
	for i, addr := range addrs {
		req := httptest.NewRequest("POST", "http://example.local/", nil)
		req.RemoteAddr = addr
		req = req.WithContext(context.WithValue(req.Context(), utils.UserIDKey, uint(7)))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if i < 2 && rec.Code == http.StatusTooManyRequests {
			t.Fatalf("request %d should pass", i)
		}
		if i == 2 && rec.Code != http.StatusTooManyRequests {
			t.Fatalf("third request for the same user should be limited, got %d", rec.Code)
		}
	}

	// A different user is unaffected.
	req := httptest.NewRequest("POST", "http://example.local/", nil)
	req.RemoteAddr = "203.0.113.5:1000"
	req = req.WithContext(context.WithValue(req.Context(), utils.UserIDKey, uint(8)))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code == http.StatusTooManyRequests {
		t.Fatal("a different user must have its own budget")
	}
}
