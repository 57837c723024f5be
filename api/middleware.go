package api

import (
	"fmt"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/killallgit/podradio/api/types"
	apperrors "github.com/killallgit/podradio/pkg/errors"
)

const (
	rateLimiterCleanupInterval = 5 * time.Minute
	rateLimiterIdleTimeout     = 10 * time.Minute
)

// clientLimiter holds a rate limiter and its last accessed time
type clientLimiter struct {
	limiter  *rate.Limiter
	mu       sync.Mutex
	lastSeen time.Time
}

func (cl *clientLimiter) touch(now time.Time) {
	cl.mu.Lock()
	cl.lastSeen = now
	cl.mu.Unlock()
}

func (cl *clientLimiter) idleSince(now time.Time) time.Duration {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	return now.Sub(cl.lastSeen)
}

// CORS allows the listed origins. "*" (or an empty list) allows any origin.
func CORS(origins ...string) gin.HandlerFunc {
	allowAll := len(origins) == 0 || slices.Contains(origins, "*")

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		switch {
		case allowAll:
			c.Header("Access-Control-Allow-Origin", "*")
		case origin != "" && slices.Contains(origins, origin):
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Vary", "Origin")
		}
		c.Header("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		c.Header("Access-Control-Max-Age", "86400")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func RequestSizeLimit() gin.HandlerFunc {
	return RequestSizeLimitWithSize(1024 * 1024)
}

func RequestSizeLimitWithSize(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodPost ||
			c.Request.Method == http.MethodPut ||
			c.Request.Method == http.MethodPatch {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}

// PerClientRateLimit applies a token bucket per client IP
func PerClientRateLimit(rateLimiters *sync.Map, cleanupStop chan struct{}, cleanupInitialized *sync.Once, rps float64, burst int) gin.HandlerFunc {
	cleanupInitialized.Do(func() {
		go cleanupOldRateLimiters(rateLimiters, cleanupStop)
	})

	limit := fmt.Sprintf("%g req/s, burst %d", rps, burst)

	return func(c *gin.Context) {
		now := time.Now()
		limiterInterface, _ := rateLimiters.LoadOrStore(c.ClientIP(), &clientLimiter{
			limiter:  rate.NewLimiter(rate.Limit(rps), burst),
			lastSeen: now,
		})

		cl := limiterInterface.(*clientLimiter)
		cl.touch(now)

		if !cl.limiter.Allow() {
			types.SendAppError(c, apperrors.RateLimitError(c.FullPath(), limit))
			c.Abort()
			return
		}
		c.Next()
	}
}

func cleanupOldRateLimiters(rateLimiters *sync.Map, cleanupStop chan struct{}) {
	ticker := time.NewTicker(rateLimiterCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			evictIdleLimiters(rateLimiters, time.Now(), rateLimiterIdleTimeout)
		case <-cleanupStop:
			return
		}
	}
}

func evictIdleLimiters(rateLimiters *sync.Map, now time.Time, idle time.Duration) {
	rateLimiters.Range(func(key, value interface{}) bool {
		cl, ok := value.(*clientLimiter)
		if !ok || cl.idleSince(now) > idle {
			rateLimiters.Delete(key)
		}
		return true
	})
}
