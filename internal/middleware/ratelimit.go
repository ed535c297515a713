package middleware

import (
	"net/http"
	"sync"
	"time"

	"taskify/backend/internal/config"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter tracks a token bucket per client IP. Stale entries are
// dropped by a background sweep.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientLimiter
	cfg     config.RateLimitConfig
	done    chan struct{}
}

func NewRateLimiter(cfg config.RateLimitConfig) *RateLimiter {
	rl := &RateLimiter{
		clients: make(map[string]*clientLimiter),
		cfg:     cfg,
		done:    make(chan struct{}),
	}
	go rl.cleanupLoop()
	return rl
}

func (rl *RateLimiter) Stop() {
	close(rl.done)
}

func (rl *RateLimiter) cleanupLoop() {
	interval := rl.cfg.CleanupInterval
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-rl.done:
			return
		case <-ticker.C:
			rl.mu.Lock()
			for ip, client := range rl.clients {
				if time.Since(client.lastSeen) > interval {
					delete(rl.clients, ip)
				}
			}
			rl.mu.Unlock()
		}
	}
}

func (rl *RateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	client, exists := rl.clients[ip]
	if !exists {
		limit := rate.Limit(float64(rl.cfg.RequestsPerMin) / 60.0)
		client = &clientLimiter{limiter: rate.NewLimiter(limit, rl.cfg.BurstSize)}
		rl.clients[ip] = client
	}
	client.lastSeen = time.Now()
	return client.limiter.Allow()
}

func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.cfg.Enabled {
			c.Next()
			return
		}
		if !rl.allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":   "rate_limited",
				"message": "Too many requests",
			})
			return
		}
		c.Next()
	}
}
