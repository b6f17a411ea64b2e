package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/Tovoson/multiStats/internal/view"
)

type failingRenderer struct {
	errorPageFails bool
}

func (r failingRenderer) Render(io.Writer, view.Page) error {
	return errors.New("render failed")
}

func (r failingRenderer) RenderError(w io.Writer, status int, title, message string) error {
	if r.errorPageFails {
		return errors.New("error page failed")
	}
	_, err := io.WriteString(w, "<p>"+message+"</p>")
	return err
}

func newPageRouter(t *testing.T, renderer PageRenderer) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	handler, err := NewTemplateHandler(renderer)
	if err != nil {
		t.Fatalf("NewTemplateHandler returned error: %v", err)
	}

	router := gin.New()
	router.GET("/", handler.RenderIndex)
	router.NoRoute(handler.NotFound)
	return router
}

func newViewRenderer(t *testing.T) *view.Renderer {
	t.Helper()
	renderer, err := view.NewRenderer(view.Site{Name: "multiStats", Description: "Daily KPI tracking"})
	if err != nil {
		t.Fatalf("NewRenderer returned error: %v", err)
	}
	return renderer
}

func TestNewTemplateHandlerRequiresRenderer(t *testing.T) {
	if _, err := NewTemplateHandler(nil); err == nil {
		t.Fatalf("expected error without renderer")
	}
}

func TestRenderIndex(t *testing.T) {
	router := newPageRouter(t, newViewRenderer(t))

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}
	if ct := recorder.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("expected html content type, got %q", ct)
	}

	body := recorder.Body.String()
	for _, fragment := range []string{view.HeroHeading, view.HeroText, `href="/about"`, `href="/contact"`} {
		if !strings.Contains(body, fragment) {
			t.Errorf("expected body to contain %q", fragment)
		}
	}
}

func TestNotFoundServesHTMLOutsideAPI(t *testing.T) {
	router := newPageRouter(t, newViewRenderer(t))

	for _, path := range []string{"/about", "/contact", "/missing/page"} {
		t.Run(path, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, path, nil))

			if recorder.Code != http.StatusNotFound {
				t.Fatalf("expected 404, got %d", recorder.Code)
			}
			if ct := recorder.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
				t.Fatalf("expected html content type, got %q", ct)
			}
			if !strings.Contains(recorder.Body.String(), "The requested page could not be found") {
				t.Fatalf("expected error message in body")
			}
		})
	}
}

func TestNotFoundServesJSONUnderAPI(t *testing.T) {
	router := newPageRouter(t, newViewRenderer(t))

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/v1/unknown", nil))

	if recorder.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", recorder.Code)
	}

	var payload map[string]string
	if err := json.Unmarshal(recorder.Body.Bytes(), &payload); err != nil {
		t.Fatalf("expected json body: %v", err)
	}
	if payload["path"] != "/api/v1/unknown" {
		t.Fatalf("expected path in payload, got %v", payload)
	}
}

func TestRenderIndexFailureFallsBackToErrorPage(t *testing.T) {
	router := newPageRouter(t, failingRenderer{})

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

	if recorder.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", recorder.Code)
	}
	if !strings.Contains(recorder.Body.String(), "Failed to render page") {
		t.Fatalf("expected error page body, got %q", recorder.Body.String())
	}
}

func TestRenderIndexFailureFallsBackToJSON(t *testing.T) {
	router := newPageRouter(t, failingRenderer{errorPageFails: true})

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

	if recorder.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", recorder.Code)
	}
	if ct := recorder.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Fatalf("expected json fallback, got %q", ct)
	}
}
