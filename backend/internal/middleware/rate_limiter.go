package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// visitorTTL is how long an idle client keeps its limiter before the next
// sweep evicts it.
const visitorTTL = 10 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type visitorLimiters struct {
	mu        sync.Mutex
	visitors  map[string]*visitor
	rate      rate.Limit
	burst     int
	ttl       time.Duration
	lastSweep time.Time
	now       func() time.Time
}

func newVisitorLimiters(r rate.Limit, b int, ttl time.Duration) *visitorLimiters {
	return &visitorLimiters{
		visitors: make(map[string]*visitor),
		rate:     r,
		burst:    b,
		ttl:      ttl,
		now:      time.Now,
	}
}

func (v *visitorLimiters) get(ip string) *rate.Limiter {
	v.mu.Lock()
	defer v.mu.Unlock()

	now := v.now()
	v.sweepLocked(now)

	vis, exists := v.visitors[ip]
	if !exists {
		vis = &visitor{limiter: rate.NewLimiter(v.rate, v.burst)}
		v.visitors[ip] = vis
	}
	vis.lastSeen = now
	return vis.limiter
}

// sweepLocked drops limiters for clients idle longer than the TTL. Runs at
// most once per TTL so steady traffic does not pay for a full map scan on
// every request.
func (v *visitorLimiters) sweepLocked(now time.Time) {
	if now.Sub(v.lastSweep) < v.ttl {
		return
	}
	v.lastSweep = now
	for ip, vis := range v.visitors {
		if now.Sub(vis.lastSeen) > v.ttl {
			delete(v.visitors, ip)
		}
	}
}

// RateLimiter applies a token-bucket limit per client IP. Idle clients are
// evicted so the per-IP state does not grow without bound.
func RateLimiter(r rate.Limit, b int) gin.HandlerFunc {
	limiters := newVisitorLimiters(r, b, visitorTTL)

	return func(c *gin.Context) {
		limiter := limiters.get(c.ClientIP())
		if !limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}
