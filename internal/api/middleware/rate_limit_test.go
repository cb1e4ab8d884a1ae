package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"catalog/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

// rejections replays n requests from clientAddr and counts the 429s.
func rejections(t *testing.T, r http.Handler, clientAddr string, n int) int {
	t.Helper()
	rejected := 0
	for range n {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/projects?page=2", nil)
		req.RemoteAddr = clientAddr
		r.ServeHTTP(w, req)

		switch w.Code {
		case http.StatusOK:
		case http.StatusTooManyRequests:
			rejected++
			assert.JSONEq(t, `{"message":"Too many requests"}`, w.Body.String())
		default:
			t.Fatalf("unexpected status %d", w.Code)
		}
	}
	return rejected
}

func newLimitedRouter(cfg config.RateLimitConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	api := r.Group("/api")
	api.Use(RateLimitMiddleware(cfg))
	api.GET("/projects", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func TestRateLimitMiddleware_RejectsBeyondBurst(t *testing.T) {
	// a refill rate this low keeps the bucket from topping up mid-test
	cfg := config.RateLimitConfig{RequestsPerSecond: 0.001, Burst: 3, Enabled: true}

	tests := []struct {
		name     string
		requests int
		want     int
	}{
		{"under burst", 2, 0},
		{"exactly burst", 3, 0},
		{"over burst", 8, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newLimitedRouter(cfg)
			assert.Equal(t, tt.want, rejections(t, r, "192.0.2.10:4000", tt.requests))
		})
	}
}

func TestRateLimitMiddleware_ClientsAreIsolated(t *testing.T) {
	r := newLimitedRouter(config.RateLimitConfig{RequestsPerSecond: 0.001, Burst: 2, Enabled: true})

	assert.Equal(t, 3, rejections(t, r, "192.0.2.10:4000", 5))
	// a different port is the same client
	assert.Equal(t, 1, rejections(t, r, "192.0.2.10:4001", 1))
	assert.Equal(t, 0, rejections(t, r, "198.51.100.7:4000", 2), "an exhausted neighbour must not drain this bucket")
}

func TestRateLimitMiddleware_Disabled(t *testing.T) {
	r := newLimitedRouter(config.RateLimitConfig{RequestsPerSecond: 0.001, Burst: 1, Enabled: false})
	assert.Zero(t, rejections(t, r, "192.0.2.10:4000", 20))
}

func TestRateLimitMiddleware_OutsideGroupUnaffected(t *testing.T) {
	r := newLimitedRouter(config.RateLimitConfig{RequestsPerSecond: 0.001, Burst: 1, Enabled: true})
	r.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	require.Equal(t, 1, rejections(t, r, "192.0.2.10:4000", 2))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.RemoteAddr = "192.0.2.10:4000"
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimiter_PerClientBuckets(t *testing.T) {
	rl := NewRateLimiter(config.RateLimitConfig{RequestsPerSecond: 0.001, Burst: 1, Enabled: true})

	assert.True(t, rl.GetLimiter("10.0.0.1").Allow())
	assert.False(t, rl.GetLimiter("10.0.0.1").Allow())
	assert.True(t, rl.GetLimiter("10.0.0.2").Allow(), "a second client gets its own bucket")
}

func TestRateLimiter_ConcurrentFirstRequestsShareBucket(t *testing.T) {
	rl := NewRateLimiter(config.RateLimitConfig{RequestsPerSecond: 0.001, Burst: 1, Enabled: true})

	const workers = 64
	got := make([]*rate.Limiter, workers)
	start := make(chan struct{})
	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			got[i] = rl.GetLimiter("203.0.113.5")
		}()
	}
	close(start)
	wg.Wait()

	for i := range workers {
		assert.Same(t, got[0], got[i])
	}

	allowed := 0
	for _, l := range got {
		if l.Allow() {
			allowed++
		}
	}
	assert.Equal(t, 1, allowed, "a burst of one admits exactly one request across all callers")
}
