package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// limiterIdleTTL is how long an IP may stay silent before its bucket is
// dropped. A returning client starts again with a full bucket.
const limiterIdleTTL = 10 * time.Minute

type visitor struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

type ipLimiter struct {
	rps   rate.Limit
	burst int
	ttl   time.Duration
	now   func() time.Time

	mu        sync.Mutex
	visitors  map[string]*visitor
	lastSweep time.Time
}

func newIPLimiter(rps float64, burst int, ttl time.Duration, now func() time.Time) *ipLimiter {
	if burst < 1 {
		burst = 1
	}
	return &ipLimiter{
		rps:       rate.Limit(rps),
		burst:     burst,
		ttl:       ttl,
		now:       now,
		visitors:  map[string]*visitor{},
		lastSweep: now(),
	}
}

func (l *ipLimiter) allow(ip string) bool {
	now := l.now()

	l.mu.Lock()
	if now.Sub(l.lastSweep) >= l.ttl {
		for k, v := range l.visitors {
			if now.Sub(v.lastSeen) >= l.ttl {
				delete(l.visitors, k)
			}
		}
		l.lastSweep = now
	}
	v, ok := l.visitors[ip]
	if !ok {
		v = &visitor{lim: rate.NewLimiter(l.rps, l.burst)}
		l.visitors[ip] = v
	}
	v.lastSeen = now
	l.mu.Unlock()

	return v.lim.AllowN(now, 1)
}

func (l *ipLimiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.visitors)
}

// RateLimit applies a token bucket per client IP. rps <= 0 disables it.
func RateLimit(rps float64, burst int) gin.HandlerFunc {
	if rps <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	return rateLimit(newIPLimiter(rps, burst, limiterIdleTTL, time.Now))
}

func rateLimit(l *ipLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"ok": false, "error": "too many requests"})
			return
		}
		c.Next()
	}
}
