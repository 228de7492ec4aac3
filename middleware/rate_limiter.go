package middleware

import (
	"net/http"
	"sync"
	"time"

	"coachly/config"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// visitor tracks the limiter for one client IP, with the last time it was
// seen so idle entries can be evicted.
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

var (
	visitorsMu   sync.Mutex
	visitors     = make(map[string]*visitor)
	evictionOnce sync.Once
)

func limiterFor(ip string) *rate.Limiter {
	visitorsMu.Lock()
	defer visitorsMu.Unlock()

	v, ok := visitors[ip]
	if !ok {
		perMin := config.AppConfig.MaxRequestsPerMin
		if perMin <= 0 {
			perMin = 100
		}
		v = &visitor{limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMin)), perMin)}
		visitors[ip] = v
	}
	v.lastSeen = time.Now()
	return v.limiter
}

// evictIdleVisitors drops limiters for IPs not seen for 10 minutes.
func evictIdleVisitors() {
	for range time.Tick(5 * time.Minute) {
		visitorsMu.Lock()
		for ip, v := range visitors {
			if time.Since(v.lastSeen) > 10*time.Minute {
				delete(visitors, ip)
			}
		}
		visitorsMu.Unlock()
	}
}

// RateLimitMiddleware throttles each client IP to the configured
// requests-per-minute budget.
func RateLimitMiddleware() gin.HandlerFunc {
	evictionOnce.Do(func() { go evictIdleVisitors() })

	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !limiterFor(ip).Allow() {
			zap.L().Warn("rate limit exceeded", zap.String("ip", ip))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests, slow down"})
			return
		}
		c.Next()
	}
}
