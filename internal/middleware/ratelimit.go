package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/liqrisk/internal/domain/dto"
)

// client represents a rate-limited client with request count and window start.
type client struct {
	windowStart time.Time
	count       int
}

// maxTrackedClients bounds the map before stale entries are swept.
const maxTrackedClients = 10000

type rateLimiter struct {
	mu      sync.Mutex
	clients map[string]*client
	limit   int
	window  time.Duration
}

// RateLimiter is an in-memory fixed-window limiter keyed by client IP.
//
// Behavior:
//   - Allows up to `requests` requests per `window` per IP.
//   - Returns 429 Too Many Requests with an ErrorResponse once exceeded.
//   - requests <= 0 disables limiting.
//
// Each call owns its own state, so separate routers do not share counters.
func RateLimiter(requests int, window time.Duration) gin.HandlerFunc {
	if requests <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	rl := &rateLimiter{clients: make(map[string]*client), limit: requests, window: window}
	return func(c *gin.Context) {
		if !rl.allow(c.ClientIP(), time.Now()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.NewErrorResponse("rate limit exceeded", nil))
			return
		}
		c.Next()
	}
}

func (rl *rateLimiter) allow(ip string, now time.Time) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if len(rl.clients) >= maxTrackedClients {
		for k, cl := range rl.clients {
			if now.Sub(cl.windowStart) > rl.window {
				delete(rl.clients, k)
			}
		}
	}

	cl, ok := rl.clients[ip]
	if !ok || now.Sub(cl.windowStart) > rl.window {
		rl.clients[ip] = &client{windowStart: now, count: 1}
		return true
	}
	cl.count++
	return cl.count <= rl.limit
}
