package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Tovoson/multiStats/internal/config"
)

// writeRequestsPerWindow caps POST/PUT/DELETE calls per IP, independent of the general limit.
const writeRequestsPerWindow = 20

// RateLimitMiddleware limits request rate per client IP. Writes are also
// checked against a stricter limiter.
func RateLimitMiddleware(cfg *config.Config, manager *RateLimitManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if manager == nil || cfg == nil || shouldBypassRateLimit(c.Request) {
			c.Next()
			return
		}

		ip := c.ClientIP()

		limiter := manager.GetVisitor(ip, cfg.RateLimitRequests, cfg.RateLimitWindow, cfg.RateLimitBurst)
		if limiter != nil && !limiter.Allow() {
			abortTooManyRequests(c)
			return
		}

		if isWrite(c.Request.Method) {
			writer := manager.GetWriteLimiter(ip, writeRequestsPerWindow, cfg.RateLimitWindow)
			if writer != nil && !writer.Allow() {
				abortTooManyRequests(c)
				return
			}
		}

		c.Next()
	}
}

func abortTooManyRequests(c *gin.Context) {
	c.JSON(http.StatusTooManyRequests, gin.H{
		"error": "too many requests, please try again later",
	})
	c.Abort()
}

func isWrite(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

func shouldBypassRateLimit(r *http.Request) bool {
	if r == nil || r.URL == nil {
		return false
	}

	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		return false
	}

	path := r.URL.Path
	if strings.HasPrefix(path, "/static/") {
		return true
	}

	switch path {
	case "/favicon.ico", "/health", "/metrics":
		return true
	}

	return false
}
