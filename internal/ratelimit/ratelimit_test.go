package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestMemoryStoreAllowsUpToBurst(t *testing.T) {
	s := NewMemoryStore(3, time.Hour)
	defer s.Close()

	for i := 0; i < 3; i++ {
		allowed, _, err := s.Allow(context.Background(), "client-a")
		if err != nil {
			t.Fatal(err)
		}
		if !allowed {
			t.Fatalf("request %d within burst should be allowed", i+1)
		}
	}

	allowed, remaining, _ := s.Allow(context.Background(), "client-a")
	if allowed {
		t.Fatal("request past burst should be denied")
	}
	if remaining != 0 {
		t.Fatalf("remaining = %d, want 0", remaining)
	}
}

// A misconfigured limit of zero must not panic the interval computation; it
// behaves as a limit of one.
func TestMemoryStoreZeroLimit(t *testing.T) {
	s := NewMemoryStore(0, time.Hour)
	defer s.Close()

	if allowed, _, _ := s.Allow(context.Background(), "client-a"); !allowed {
		t.Fatal("clamped limit should still allow one request")
	}
	if allowed, _, _ := s.Allow(context.Background(), "client-a"); allowed {
		t.Fatal("second request should be denied at the clamped limit")
	}
}

func TestMemoryStoreKeysAreIndependent(t *testing.T) {
	s := NewMemoryStore(1, time.Hour)
	defer s.Close()

	if allowed, _, _ := s.Allow(context.Background(), "client-a"); !allowed {
		t.Fatal("first request for client-a should pass")
	}
	if allowed, _, _ := s.Allow(context.Background(), "client-a"); allowed {
		t.Fatal("second request for client-a should be denied")
	}
	if allowed, _, _ := s.Allow(context.Background(), "client-b"); !allowed {
		t.Fatal("client-b must not share client-a's bucket")
	}
}

func TestMemoryStoreSweepsIdleKeys(t *testing.T) {
	s := NewMemoryStore(1, 5*time.Millisecond)
	defer s.Close()

	s.Allow(context.Background(), "client-a")

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		s.mu.Lock()
		n := len(s.entries)
		s.mu.Unlock()
		if n == 0 {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("idle key was never swept")
}
