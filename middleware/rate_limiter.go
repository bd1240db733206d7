package middleware

import (
	"net/http"
	"sync"
	"time"

	"fairway/config"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const defaultRequestsPerMin = 100

// rateLimiterStore maps client IPs to their token buckets.
type rateLimiterStore struct {
	limiters map[string]*rate.Limiter
	mu       sync.Mutex
}

var limiterStore = &rateLimiterStore{
	limiters: make(map[string]*rate.Limiter),
}

// requestsPerMin reads the configured per-IP budget, guarding against a
// missing or zeroed config value.
func requestsPerMin() int {
	if n := config.AppConfig.MaxRequestsPerMin; n > 0 {
		return n
	}
	return defaultRequestsPerMin
}

// getLimiter returns the limiter for an IP, creating one sized from config on
// first sight. The budget is fixed per limiter lifetime.
func (s *rateLimiterStore) getLimiter(ip string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	limiter, exists := s.limiters[ip]
	if !exists {
		perMin := requestsPerMin()
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMin)), perMin)
		s.limiters[ip] = limiter
	}
	return limiter
}

// RateLimitMiddleware limits requests per client IP. The validation console
// and the payment gateway both sit behind it; webhook retries stay well under
// the configured budget.
func RateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := getClientIP(c)
		if !limiterStore.getLimiter(ip).Allow() {
			zap.L().Warn("rate limit exceeded", zap.String("ip", ip), zap.String("path", c.FullPath()))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Rate limit exceeded. Try again later."})
			return
		}
		c.Next()
	}
}
