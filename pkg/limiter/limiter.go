// Package limiter throttles mutating requests per signed-in user.
package limiter

import (
	"sync"

	"golang.org/x/time/rate"
)

// Store manages per-user rate limiters: user key -> rate limiter
type Store struct {
	limiters     map[string]*rate.Limiter
	mu           sync.Mutex
	defaultRate  rate.Limit
	defaultBurst int
}

func NewStore(defaultRate rate.Limit, defaultBurst int) *Store {
	return &Store{
		limiters:     make(map[string]*rate.Limiter),
		defaultRate:  defaultRate,
		defaultBurst: defaultBurst,
	}
}

func (s *Store) GetLimiter(key string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	limiter, exists := s.limiters[key]
	if !exists {
		limiter = rate.NewLimiter(s.defaultRate, s.defaultBurst)
		s.limiters[key] = limiter
	}
	return limiter
}

// SetLimiter overrides the default budget for one key, e.g. for a service account.
func (s *Store) SetLimiter(key string, keyRate rate.Limit, keyBurst int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.limiters[key] = rate.NewLimiter(keyRate, keyBurst)
}

// Allow consumes one token for key.
func (s *Store) Allow(key string) bool {
	return s.GetLimiter(key).Allow()
}
