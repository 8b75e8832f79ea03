package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/pantryhq/pantry/internal/infrastructure/config"
	apperrors "github.com/pantryhq/pantry/pkg/errors"
	"golang.org/x/time/rate"
)

type ownerLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter applies a token bucket per owner. Buckets idle for longer
// than the configured TTL are dropped by Sweep.
type RateLimiter struct {
	mu      sync.Mutex
	owners  map[string]*ownerLimiter
	limit   rate.Limit
	burst   int
	idleTTL time.Duration
	now     func() time.Time
}

// NewRateLimiter creates a limiter from the rate limit configuration
func NewRateLimiter(cfg config.RateLimitConfig) *RateLimiter {
	burst := cfg.BurstSize
	if burst < 1 {
		burst = 1
	}
	idle := cfg.IdleTTL
	if idle <= 0 {
		idle = 10 * time.Minute
	}
	return &RateLimiter{
		owners:  make(map[string]*ownerLimiter),
		limit:   rate.Limit(float64(cfg.RequestsPerMin) / 60),
		burst:   burst,
		idleTTL: idle,
		now:     time.Now,
	}
}

// Allow reports whether the owner may make another request now
func (l *RateLimiter) Allow(owner string) bool {
	l.mu.Lock()
	entry, ok := l.owners[owner]
	if !ok {
		entry = &ownerLimiter{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.owners[owner] = entry
	}
	now := l.now()
	entry.lastSeen = now
	l.mu.Unlock()

	return entry.limiter.AllowN(now, 1)
}

// Sweep drops buckets that have been idle past the TTL and returns how many
// were removed
func (l *RateLimiter) Sweep() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-l.idleTTL)
	removed := 0
	for owner, entry := range l.owners {
		if entry.lastSeen.Before(cutoff) {
			delete(l.owners, owner)
			removed++
		}
	}
	return removed
}

// Run sweeps idle buckets until stop is closed
func (l *RateLimiter) Run(stop <-chan struct{}) {
	ticker := time.NewTicker(l.idleTTL)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			l.Sweep()
		case <-stop:
			return
		}
	}
}

// Middleware rejects requests over the owner's budget. It must run after
// Authenticate.
func (l *RateLimiter) Middleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			owner, _ := OwnerFromContext(r.Context())
			if !l.Allow(owner) {
				retry := 60
				if l.limit > 0 {
					retry = int(1/float64(l.limit)) + 1
				}
				w.Header().Set("Retry-After", strconv.Itoa(retry))
				WriteError(w, r, apperrors.NewTooManyRequestsError(), 0)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
