package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limiter defines the interface for per-user rate limiting
type Limiter interface {
	Allow(userID string) bool
	// PruneIdle drops entries not seen for maxIdle and reports how many.
	PruneIdle(maxIdle time.Duration) int
}

type userEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// InMemoryLimiter is an implementation of Limiter stored in memory
type InMemoryLimiter struct {
	users map[string]*userEntry
	mu    sync.Mutex
	r     rate.Limit
	b     int
}

// NewInMemoryLimiter creates a new rate limiter.
// Example: NewInMemoryLimiter(2, time.Second, 10) -> 2 requests per second, burst of 10
func NewInMemoryLimiter(requests int, per time.Duration, burst int) *InMemoryLimiter {
	return &InMemoryLimiter{
		users: make(map[string]*userEntry),
		r:     rate.Every(per / time.Duration(requests)),
		b:     burst,
	}
}

var _ Limiter = (*InMemoryLimiter)(nil)

// Allow checks if a user is allowed to perform an action
func (l *InMemoryLimiter) Allow(userID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, exists := l.users[userID]
	if !exists {
		entry = &userEntry{limiter: rate.NewLimiter(l.r, l.b)}
		l.users[userID] = entry
	}
	entry.lastSeen = time.Now()

	return entry.limiter.Allow()
}

func (l *InMemoryLimiter) PruneIdle(maxIdle time.Duration) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := time.Now().Add(-maxIdle)
	pruned := 0
	for userID, entry := range l.users {
		if entry.lastSeen.Before(cutoff) {
			delete(l.users, userID)
			pruned++
		}
	}
	return pruned
}
