package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const defaultRobotsDirectives = "noindex, nofollow"

// NoIndexMiddleware marks responses under any of the path prefixes as not
// indexable. With no prefixes every response is marked.
func NoIndexMiddleware(prefixes ...string) gin.HandlerFunc {
	cleaned := make([]string, 0, len(prefixes))
	for _, prefix := range prefixes {
		if prefix = strings.TrimSpace(prefix); prefix != "" {
			cleaned = append(cleaned, prefix)
		}
	}

	return func(c *gin.Context) {
		if matchesPrefix(c.Request.URL.Path, cleaned) {
			c.Header("X-Robots-Tag", defaultRobotsDirectives)
		}
		c.Next()
	}
}

func matchesPrefix(path string, prefixes []string) bool {
	if len(prefixes) == 0 {
		return true
	}
	for _, prefix := range prefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}
