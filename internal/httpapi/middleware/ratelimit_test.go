package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRateLimit_AllowsThenBlocks(t *testing.T) {
	h := RateLimit(60, 2)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "1.2.3.4:1234"

	for i := 0; i < 2; i++ {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		if rr.Code != 200 {
			t.Fatalf("want 200 got %d", rr.Code)
		}
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != 429 {
		t.Fatalf("want 429 got %d", rr.Code)
	}

	// a different client has its own bucket
	other := httptest.NewRequest("GET", "/", nil)
	other.RemoteAddr = "5.6.7.8:999"
	rr2 := httptest.NewRecorder()
	h.ServeHTTP(rr2, other)
	if rr2.Code != 200 {
		t.Fatalf("other client blocked: %d", rr2.Code)
	}
}

func TestRateLimit_Disabled(t *testing.T) {
	h := RateLimit(0, 0)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "1.2.3.4:1234"
	for i := 0; i < 50; i++ {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		if rr.Code != 200 {
			t.Fatalf("disabled limiter blocked request %d: %d", i, rr.Code)
		}
	}
}

func TestIPLimiter_RefillsOverTime(t *testing.T) {
	l := newIPLimiter(1, 2, time.Minute) // 1 token/s, burst 2
	now := time.Unix(1000, 0)

	if !l.allow("c", now) || !l.allow("c", now) {
		t.Fatalf("burst should admit two requests")
	}
	if l.allow("c", now) {
		t.Fatalf("third request at t0 should be blocked")
	}
	if !l.allow("c", now.Add(time.Second)) {
		t.Fatalf("one second should refill one token")
	}
	if l.allow("c", now.Add(time.Second)) {
		t.Fatalf("refilled token already spent")
	}
}

func TestIPLimiter_PrunesIdleBuckets(t *testing.T) {
	l := newIPLimiter(1, 1, time.Minute)
	now := time.Unix(1000, 0)

	for i := 0; i < pruneAt; i++ {
		l.allow(fmt.Sprintf("client-%d", i), now)
	}
	if len(l.buckets) != pruneAt {
		t.Fatalf("buckets = %d, want %d", len(l.buckets), pruneAt)
	}

	// a new client past the ttl triggers the sweep
	l.allow("late", now.Add(2*time.Minute))
	if len(l.buckets) != 1 {
		t.Fatalf("buckets after prune = %d, want 1", len(l.buckets))
	}
}

func TestClientIP(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "10.0.0.9:4321"
	if got := clientIP(r); got != "10.0.0.9" {
		t.Fatalf("clientIP = %q", got)
	}
	r.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	if got := clientIP(r); got != "203.0.113.7" {
		t.Fatalf("clientIP with XFF = %q", got)
	}
}
