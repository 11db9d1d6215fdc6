package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"transactions-dashboard/internal/config"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func okHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func serveFrom(e *echo.Echo, handler echo.HandlerFunc, remoteAddr string) (*httptest.ResponseRecorder, error) {
	req := httptest.NewRequest(http.MethodGet, "/transactions", nil)
	req.RemoteAddr = remoteAddr
	rec := httptest.NewRecorder()
	err := handler(e.NewContext(req, rec))
	return rec, err
}

func TestRateLimiter(t *testing.T) {
	e := echo.New()
	handler := RateLimiter(NewVisitorLimiter(5, 10))(okHandler)

	for i := 0; i < 10; i++ {
		rec, err := serveFrom(e, handler, "192.168.1.100:12345")
		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code, "request %d is within the burst", i)
	}

	rateLimited := false
	for i := 0; i < 20; i++ {
		rec, err := serveFrom(e, handler, "192.168.1.100:12345")
		// Rate limiter uses SendError which sends response and returns nil
		if err == nil && rec.Code == http.StatusTooManyRequests {
			rateLimited = true
			break
		}
	}

	assert.True(t, rateLimited, "Should be rate limited after many requests")
}

func TestRateLimiterWithConfig(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	e := echo.New()
	handler := RateLimiterWithConfig(ctx, config.SecurityConfig{RateLimitPerSecond: 2, RateLimitBurst: 4})(okHandler)

	for i := 0; i < 4; i++ {
		rec, err := serveFrom(e, handler, "192.168.1.2:12345")
		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
	}

	rec, err := serveFrom(e, handler, "192.168.1.2:12345")
	assert.NoError(t, err)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), "SYSTEM_005")
}

func TestRateLimiterDifferentIPs(t *testing.T) {
	e := echo.New()
	handler := RateLimiter(NewVisitorLimiter(1, 2))(okHandler)

	ips := []string{"192.168.1.1:1234", "192.168.1.2:1234", "192.168.1.3:1234"}
	for _, ip := range ips {
		for i := 0; i < 2; i++ {
			rec, err := serveFrom(e, handler, ip)
			assert.NoError(t, err, "Request %d for IP %s should succeed", i, ip)
			assert.Equal(t, http.StatusOK, rec.Code)
		}
	}
}

func TestNewVisitorLimiterDefaults(t *testing.T) {
	limiter := NewVisitorLimiter(0, 0)

	assert.Equal(t, 5, int(limiter.limit))
	assert.Equal(t, 10, limiter.burst)
}

func serveWithHeader(e *echo.Echo, handler echo.HandlerFunc, remoteAddr, forwardedFor string) int {
	req := httptest.NewRequest(http.MethodGet, "/transactions", nil)
	req.RemoteAddr = remoteAddr
	req.Header.Set(echo.HeaderXForwardedFor, forwardedFor)
	rec := httptest.NewRecorder()
	_ = handler(e.NewContext(req, rec))
	return rec.Code
}

func TestRateLimiter_IgnoresForwardingHeadersByDefault(t *testing.T) {
	e := echo.New()
	e.IPExtractor = IPExtractor(config.SecurityConfig{})
	limiter := NewVisitorLimiter(1, 1)
	handler := RateLimiter(limiter)(okHandler)

	assert.Equal(t, http.StatusOK, serveWithHeader(e, handler, "203.0.113.7:1000", "10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, serveWithHeader(e, handler, "203.0.113.7:1001", "10.0.0.2"))
	assert.Equal(t, http.StatusTooManyRequests, serveWithHeader(e, handler, "203.0.113.7:1002", "10.0.0.3"))
	assert.Equal(t, 1, limiter.Len())
}

func TestRateLimiter_TrustedProxy(t *testing.T) {
	e := echo.New()
	e.IPExtractor = IPExtractor(config.SecurityConfig{TrustProxyHeaders: true})
	limiter := NewVisitorLimiter(1, 1)
	handler := RateLimiter(limiter)(okHandler)

	// the proxy sits on a private network, so the forwarded client is used
	assert.Equal(t, http.StatusOK, serveWithHeader(e, handler, "10.0.0.5:1000", "198.51.100.1"))
	assert.Equal(t, http.StatusOK, serveWithHeader(e, handler, "10.0.0.5:1000", "198.51.100.2"))
	assert.Equal(t, http.StatusTooManyRequests, serveWithHeader(e, handler, "10.0.0.5:1000", "198.51.100.1"))

	// a public peer cannot choose its own bucket
	assert.Equal(t, http.StatusOK, serveWithHeader(e, handler, "203.0.113.9:1000", "198.51.100.3"))
	assert.Equal(t, http.StatusTooManyRequests, serveWithHeader(e, handler, "203.0.113.9:1000", "198.51.100.4"))
	assert.Equal(t, 3, limiter.Len())
}

func TestVisitorCleanup(t *testing.T) {
	current := time.Date(2022, 2, 28, 12, 0, 0, 0, time.UTC)
	limiter := NewVisitorLimiter(5, 10)
	limiter.now = func() time.Time { return current }

	limiter.Allow("old_ip")
	current = current.Add(5 * time.Minute)
	limiter.Allow("new_ip")

	removed := limiter.Cleanup(visitorTTL)

	assert.Equal(t, 1, removed, "Old visitor should be removed")
	assert.Equal(t, 1, limiter.Len())
	_, newExists := limiter.visitors["new_ip"]
	assert.True(t, newExists, "New visitor should still exist")
}

func TestVisitorLimiterRunStopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	go func() {
		NewVisitorLimiter(5, 10).Run(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancellation")
	}
}

func TestRateLimiterConcurrency(t *testing.T) {
	e := echo.New()
	handler := RateLimiter(NewVisitorLimiter(5, 10))(okHandler)

	var wg sync.WaitGroup
	var mu sync.Mutex
	successCount := 0
	rateLimitCount := 0

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			rec, err := serveFrom(e, handler, "192.168.1.100:12345")

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				return
			}
			switch rec.Code {
			case http.StatusOK:
				successCount++
			case http.StatusTooManyRequests:
				rateLimitCount++
			}
		}()
	}

	wg.Wait()

	assert.Greater(t, successCount, 0, "Some requests should succeed")
	assert.Greater(t, rateLimitCount, 0, "Some requests should be rate limited")
	assert.Equal(t, 20, successCount+rateLimitCount, "All requests should be accounted for")
}
