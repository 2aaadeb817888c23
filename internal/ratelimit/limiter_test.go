package ratelimit

import (
	"testing"
	"time"
)

func TestLimiter_AllowsUpToMax(t *testing.T) {
	limiter := NewLimiter(DefaultWindow, DefaultMax)

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	for i := 0; i < DefaultMax; i++ {
		if !limiter.Admit("client") {
			t.Fatalf("request %d denied, want all %d allowed", i+1, DefaultMax)
		}
		now = now.Add(time.Second)
	}

	if limiter.Admit("client") {
		t.Errorf("request %d allowed, want denied", DefaultMax+1)
	}
}

func TestLimiter_ResumesAfterWindow(t *testing.T) {
	limiter := NewLimiter(60*time.Second, 30)

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	for i := 0; i < 30; i++ {
		if !limiter.Admit("client") {
			t.Fatalf("request %d denied within limit", i+1)
		}
	}
	if limiter.Admit("client") {
		t.Fatal("over-limit request allowed")
	}

	// Once the window has elapsed, admission resumes.
	now = now.Add(61 * time.Second)
	if !limiter.Admit("client") {
		t.Error("request denied after the window elapsed")
	}
}

func TestLimiter_DenialNotRecorded(t *testing.T) {
	limiter := NewLimiter(60*time.Second, 2)

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	limiter.Admit("client")
	now = now.Add(30 * time.Second)
	limiter.Admit("client")

	// Denied attempts must not extend the client's window.
	for i := 0; i < 10; i++ {
		now = now.Add(time.Second)
		if limiter.Admit("client") {
			t.Fatal("over-limit request allowed")
		}
	}

	// The first admission (t=0) leaves the window at t=61.
	now = now.Add(21 * time.Second)
	if !limiter.Admit("client") {
		t.Error("request denied after the oldest entry expired")
	}
}

func TestLimiter_ClientsAreIndependent(t *testing.T) {
	limiter := NewLimiter(60*time.Second, 1)

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	if !limiter.Admit("a") {
		t.Fatal("first request for client a denied")
	}
	if limiter.Admit("a") {
		t.Error("second request for client a allowed")
	}
	if !limiter.Admit("b") {
		t.Error("client b throttled by client a's window")
	}
}
