package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

func SecurityHeadersMiddleware(styleSources, imageSources []string) gin.HandlerFunc {
	policy := buildContentSecurityPolicy(styleSources, imageSources)

	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-DNS-Prefetch-Control", "off")
		c.Header("X-Permitted-Cross-Domain-Policies", "none")
		c.Header("Cross-Origin-Opener-Policy", "same-origin")
		c.Header("Cross-Origin-Resource-Policy", "same-origin")
		if c.Request.TLS != nil {
			c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}
		c.Header("Content-Security-Policy", policy)
		c.Header("Referrer-Policy", "no-referrer")
		c.Header("Permissions-Policy", "geolocation=(), microphone=(), camera=()")
		c.Next()
	}
}

func buildContentSecurityPolicy(styleSources, imageSources []string) string {
	directives := []struct {
		name    string
		sources []string
	}{
		{name: "default-src", sources: []string{"'self'"}},
		{name: "script-src", sources: []string{"'self'"}},
		{name: "style-src", sources: appendSources([]string{"'self'"}, styleSources)},
		{name: "img-src", sources: appendSources([]string{"'self'", "data:"}, imageSources)},
		{name: "form-action", sources: []string{"'self'"}},
		{name: "object-src", sources: []string{"'none'"}},
		{name: "base-uri", sources: []string{"'self'"}},
		{name: "frame-ancestors", sources: []string{"'none'"}},
	}

	parts := make([]string, 0, len(directives))
	for _, directive := range directives {
		parts = append(parts, directive.name+" "+strings.Join(directive.sources, " "))
	}
	return strings.Join(parts, "; ")
}

func appendSources(base, extra []string) []string {
	seen := make(map[string]bool, len(base)+len(extra))
	result := make([]string, 0, len(base)+len(extra))
	for _, source := range append(base, extra...) {
		source = strings.TrimSpace(source)
		if source == "" || seen[source] {
			continue
		}
		seen[source] = true
		result = append(result, source)
	}
	return result
}
