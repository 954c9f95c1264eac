package middleware

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"printstudio/pkg/metrics"
)

// per-key limiter store (simple in-memory token-bucket)
var limiterStore sync.Map // map[string]*rate.Limiter

// getLimiter returns (and lazily creates) a token-bucket limiter for the given key
func getLimiter(key string, rps float64, burst int) *rate.Limiter {
	v, ok := limiterStore.Load(key)
	if ok {
		return v.(*rate.Limiter)
	}
	lim := rate.NewLimiter(rate.Limit(rps), burst)
	limiterStore.Store(key, lim)
	return lim
}

// limiterKey prefers the session id over the client IP so that several
// admins behind one NAT do not share a bucket.
func limiterKey(c *gin.Context) string {
	if state := SessionFromContext(c); state != nil {
		return "sess:" + state.ID
	}
	ip := c.ClientIP()
	if ip == "" {
		ip = "unknown"
	}
	return "ip:" + ip
}

// RateLimitMiddleware returns a Gin middleware enforcing a token-bucket
// per-key limit. rps = allowed events per second, burst = maximum tokens
// in bucket.
func RateLimitMiddleware(rps float64, burst int) gin.HandlerFunc {
	return func(c *gin.Context) {
		lim := getLimiter(limiterKey(c), rps, burst)
		if !lim.Allow() {
			c.Header("Retry-After", "1")
			metrics.RateLimitRejected.WithLabelValues("memory").Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Rate limit exceeded"})
			return
		}
		metrics.RateLimitAllowed.WithLabelValues("memory").Inc()
		c.Next()
	}
}
