package worker

import (
	"context"
	"testing"
	"time"
)

func TestLimiter_Allow(t *testing.T) {
	// 1 req/s with burst 2: two immediate requests pass, the third is denied
	limiter := NewLimiter(1, 2)

	if !limiter.Allow("https://example.com/a") {
		t.Error("first request should be allowed")
	}
	if !limiter.Allow("https://example.com/b") {
		t.Error("second request should be allowed (burst)")
	}
	if limiter.Allow("https://example.com/c") {
		t.Error("third request should be denied")
	}
}

func TestLimiter_PerHost(t *testing.T) {
	limiter := NewLimiter(1, 1)

	if !limiter.Allow("https://example.com/") {
		t.Error("first host should be allowed")
	}
	// Different host gets its own bucket
	if !limiter.Allow("https://other.com/") {
		t.Error("second host should have its own limit")
	}
	if limiter.Allow("https://example.com/again") {
		t.Error("first host should now be denied")
	}
}

func TestLimiter_WaitRespectsContext(t *testing.T) {
	limiter := NewLimiter(0.01, 1) // 1 token per 100s

	if err := limiter.Wait(context.Background(), "https://slow.example.com/"); err != nil {
		t.Fatalf("first wait should pass: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	if err := limiter.Wait(ctx, "https://slow.example.com/"); err == nil {
		t.Error("expected wait to fail under an expiring context")
	}
}

func TestLimiter_InvalidURL(t *testing.T) {
	limiter := NewLimiter(1, 1)

	if limiter.Allow("://not-a-url") {
		t.Error("invalid URL should not be allowed")
	}
}
