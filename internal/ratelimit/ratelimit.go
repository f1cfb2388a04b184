package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Store decides whether a caller identified by key may proceed.
// Implementations: MemoryStore for single-instance deployments, RedisStore
// for deployments where the counter must be shared across instances.
type Store interface {
	// Allow reports whether the caller may proceed and how many requests
	// remain in the current window. A nil error with allowed=false means
	// the caller is rate limited, not that the check failed.
	Allow(ctx context.Context, key string) (allowed bool, remaining int, err error)
}

type memoryEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// MemoryStore keeps one token bucket per key in process memory and sweeps
// idle keys periodically.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]*memoryEntry

	limit   rate.Limit
	burst   int
	idleTTL time.Duration
	done    chan struct{}
}

// NewMemoryStore creates a MemoryStore allowing limit requests per window
// with bursts up to the full window allowance. Idle keys are swept after
// they have not been seen for two windows. A limit below 1 is raised to 1
// rather than dividing the window by zero.
func NewMemoryStore(limit int, window time.Duration) *MemoryStore {
	if limit < 1 {
		limit = 1
	}
	s := &MemoryStore{
		entries: make(map[string]*memoryEntry),
		limit:   rate.Every(window / time.Duration(limit)),
		burst:   limit,
		idleTTL: 2 * window,
		done:    make(chan struct{}),
	}
	go s.sweep()
	return s
}

func (s *MemoryStore) Allow(_ context.Context, key string) (bool, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		e = &memoryEntry{limiter: rate.NewLimiter(s.limit, s.burst)}
		s.entries[key] = e
	}
	e.lastSeen = time.Now()

	allowed := e.limiter.Allow()
	remaining := int(e.limiter.Tokens())
	if remaining < 0 {
		remaining = 0
	}
	return allowed, remaining, nil
}

// Close stops the background sweep.
func (s *MemoryStore) Close() {
	close(s.done)
}

func (s *MemoryStore) sweep() {
	ticker := time.NewTicker(s.idleTTL)
	defer ticker.Stop()
	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			cutoff := time.Now().Add(-s.idleTTL)
			s.mu.Lock()
			for key, e := range s.entries {
				if e.lastSeen.Before(cutoff) {
					delete(s.entries, key)
				}
			}
			s.mu.Unlock()
		}
	}
}
