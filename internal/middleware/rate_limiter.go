package middleware

import (
	"context"
	"sync"
	"time"

	"transactions-dashboard/internal/config"
	"transactions-dashboard/internal/errors"
	"transactions-dashboard/internal/handlers"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

const (
	visitorTTL      = 3 * time.Minute
	cleanupInterval = time.Minute
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// VisitorLimiter keeps one token bucket per client IP
type VisitorLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    rate.Limit
	burst    int
	now      func() time.Time
}

// NewVisitorLimiter creates a limiter allowing perSecond requests with the given burst per client
func NewVisitorLimiter(perSecond, burst int) *VisitorLimiter {
	if perSecond <= 0 {
		perSecond = 5
	}
	if burst <= 0 {
		burst = perSecond * 2
	}

	return &VisitorLimiter{
		visitors: make(map[string]*visitor),
		limit:    rate.Limit(perSecond),
		burst:    burst,
		now:      time.Now,
	}
}

// Allow reports whether the client identified by ip may proceed
func (l *VisitorLimiter) Allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	v, exists := l.visitors[ip]
	if !exists {
		v = &visitor{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.visitors[ip] = v
	}
	v.lastSeen = l.now()

	return v.limiter.Allow()
}

// Cleanup forgets clients idle for longer than ttl and returns how many were removed
func (l *VisitorLimiter) Cleanup(ttl time.Duration) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0
	cutoff := l.now().Add(-ttl)
	for ip, v := range l.visitors {
		if v.lastSeen.Before(cutoff) {
			delete(l.visitors, ip)
			removed++
		}
	}
	return removed
}

// Len returns the number of tracked clients
func (l *VisitorLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.visitors)
}

// Run evicts idle clients every minute until ctx is done
func (l *VisitorLimiter) Run(ctx context.Context) {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.Cleanup(visitorTTL)
		}
	}
}

// RateLimiter creates a middleware for rate limiting requests per client IP.
// The server's IPExtractor must be set, otherwise echo trusts forwarding headers.
func RateLimiter(limiter *VisitorLimiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !limiter.Allow(c.RealIP()) {
				return handlers.SendError(c, errors.SystemRateLimitExceeded)
			}

			return next(c)
		}
	}
}

// RateLimiterWithConfig creates a rate limiter from the security settings.
// Idle clients are evicted until ctx is done.
func RateLimiterWithConfig(ctx context.Context, cfg config.SecurityConfig) echo.MiddlewareFunc {
	limiter := NewVisitorLimiter(cfg.RateLimitPerSecond, cfg.RateLimitBurst)
	go limiter.Run(ctx)

	return RateLimiter(limiter)
}

// IPExtractor decides where c.RealIP reads the client address from. Forwarding
// headers are only honoured when TrustProxyHeaders is set, and then only when
// they were added by a loopback or private-network proxy.
func IPExtractor(cfg config.SecurityConfig) echo.IPExtractor {
	if cfg.TrustProxyHeaders {
		return echo.ExtractIPFromXFFHeader()
	}
	return echo.ExtractIPDirect()
}
