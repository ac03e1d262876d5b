package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestWriteHeaders(t *testing.T) {
	w := httptest.NewRecorder()
	WriteHeaders(w, Result{Allowed: true, Limit: 60, Remaining: 45, ResetAt: time.Unix(1706012345, 0)})
	if got := w.Header().Get("X-RateLimit-Limit"); got != "60" {
		t.Errorf("X-RateLimit-Limit = %s, want 60", got)
	}
	if got := w.Header().Get("X-RateLimit-Remaining"); got != "45" {
		t.Errorf("X-RateLimit-Remaining = %s, want 45", got)
	}
	if got := w.Header().Get("X-RateLimit-Reset"); got != "1706012345" {
		t.Errorf("X-RateLimit-Reset = %s, want 1706012345", got)
	}
	if got := w.Header().Get("Retry-After"); got != "" {
		t.Errorf("Retry-After should not be set for allowed requests, got %s", got)
	}

	w = httptest.NewRecorder()
	WriteHeaders(w, Result{Allowed: false, Limit: 60, RetryAfter: 30 * time.Second})
	if got := w.Header().Get("Retry-After"); got != "30" {
		t.Errorf("Retry-After = %s, want 30", got)
	}
}

func TestResponseWriter(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := NewResponseWriter(rec, Result{Allowed: true, Limit: 10, Remaining: 9})
	rw.WriteHeader(http.StatusCreated)
	_, _ = rw.Write([]byte("ok"))
	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d", rec.Code)
	}
	if got := rec.Header().Get("X-RateLimit-Remaining"); got != "9" {
		t.Errorf("X-RateLimit-Remaining = %q", got)
	}
	if rw.Unwrap() != rec {
		t.Error("Unwrap should return the underlying writer")
	}

	// Write without WriteHeader still sets the headers.
	rec = httptest.NewRecorder()
	_, _ = NewResponseWriter(rec, Result{Allowed: true, Limit: 3}).Write([]byte("x"))
	if got := rec.Header().Get("X-RateLimit-Limit"); got != "3" {
		t.Errorf("X-RateLimit-Limit = %q", got)
	}
}

func TestBuildKey(t *testing.T) {
	if got := BuildKey("10.0.0.1", "read"); got != "ip:10.0.0.1:read" {
		t.Errorf("BuildKey() = %q", got)
	}
}
