package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Tovoson/multiStats/pkg/logger"
)

// CacheClearer is implemented by pkg/cache.
type CacheClearer interface {
	Enabled() bool
	FlushAll() error
	InvalidateKpi() error
}

// ClearCache drops cached entries. ?type=kpi limits it to KPI keys; the default is everything.
func ClearCache(cache CacheClearer) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cache == nil || !cache.Enabled() {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Cache is disabled"})
			return
		}

		scope := c.DefaultQuery("type", "all")

		var err error
		switch scope {
		case "all":
			err = cache.FlushAll()
		case "kpi":
			err = cache.InvalidateKpi()
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cache type"})
			return
		}

		if err != nil {
			logger.ErrorContext(c.Request.Context(), err, "Failed to clear cache", map[string]interface{}{"type": scope})
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cache"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Cache cleared", "type": scope})
	}
}
