package handlers

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Tovoson/multiStats/internal/view"
	"github.com/Tovoson/multiStats/pkg/logger"
)

// PageRenderer renders complete HTML documents.
type PageRenderer interface {
	Render(w io.Writer, page view.Page) error
	RenderError(w io.Writer, status int, title, message string) error
}

type TemplateHandler struct {
	renderer PageRenderer
	home     view.Page
}

func NewTemplateHandler(renderer PageRenderer) (*TemplateHandler, error) {
	if renderer == nil {
		return nil, errors.New("renderer is required")
	}

	return &TemplateHandler{
		renderer: renderer,
		home:     view.HomePage(),
	}, nil
}

func (h *TemplateHandler) RenderIndex(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.renderer.Render(&buf, h.home); err != nil {
		logger.ErrorContext(c.Request.Context(), err, "Failed to render page", map[string]interface{}{"path": h.home.Path})
		h.renderError(c, http.StatusInternalServerError, "500 - Server Error", "Failed to render page")
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

// NotFound answers unmatched routes: JSON under /api, the HTML error page elsewhere.
func (h *TemplateHandler) NotFound(c *gin.Context) {
	path := c.Request.URL.Path
	if path == "/api" || strings.HasPrefix(path, "/api/") {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Route not found",
			"path":  path,
		})
		return
	}

	h.renderError(c, http.StatusNotFound, "404 - Page not found", "The requested page could not be found")
}

func (h *TemplateHandler) renderError(c *gin.Context, status int, title, msg string) {
	var buf bytes.Buffer
	if err := h.renderer.RenderError(&buf, status, title, msg); err != nil {
		logger.ErrorContext(c.Request.Context(), err, "Failed to render error page", map[string]interface{}{"status": status})
		c.JSON(status, gin.H{"error": msg})
		return
	}

	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
}
