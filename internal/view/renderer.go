package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/Tovoson/multiStats/pkg/utils"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	layoutTemplate  = "base.html"
	indexTemplate   = "index.html"
	errorTemplate   = "error.html"
	templatesFolder = "templates"
)

// Site carries the metadata shared by every rendered page.
type Site struct {
	Name        string
	Description string
}

// Renderer turns a Page into HTML. It holds no mutable state after
// construction and is safe for concurrent use.
type Renderer struct {
	templates *template.Template
	site      Site
}

type chrome struct {
	Logo      string
	Links     []Link
	Copyright string
}

type layoutData struct {
	Title       string
	Description string
	Chrome      chrome
	Content     template.HTML
}

type errorData struct {
	StatusCode int
	Message    string
}

func NewRenderer(site Site) (*Renderer, error) {
	templates, err := utils.LoadTemplates(templateFS, templatesFolder)
	if err != nil {
		return nil, err
	}

	for _, name := range []string{layoutTemplate, indexTemplate, errorTemplate} {
		if templates.Lookup(name) == nil {
			return nil, fmt.Errorf("template %s not found", name)
		}
	}

	return &Renderer{templates: templates, site: site}, nil
}

func (r *Renderer) Render(w io.Writer, page Page) error {
	content, err := r.execute(indexTemplate, page)
	if err != nil {
		return err
	}

	return r.renderLayout(w, page, r.title(page.Title), content)
}

// RenderError renders the error page inside the chrome of the home page.
func (r *Renderer) RenderError(w io.Writer, status int, title, message string) error {
	page := HomePage()
	page.Path = ""

	content, err := r.execute(errorTemplate, errorData{StatusCode: status, Message: message})
	if err != nil {
		return err
	}

	return r.renderLayout(w, page, title, content)
}

func (r *Renderer) renderLayout(w io.Writer, page Page, title string, content []byte) error {
	data := layoutData{
		Title:       title,
		Description: r.site.Description,
		Chrome: chrome{
			Logo:      page.Logo,
			Links:     page.Links(),
			Copyright: page.Footer.Copyright,
		},
		Content: template.HTML(content),
	}

	output, err := r.execute(layoutTemplate, data)
	if err != nil {
		return err
	}

	_, err = w.Write(output)
	return err
}

func (r *Renderer) execute(name string, data interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) title(pageTitle string) string {
	switch {
	case r.site.Name == "":
		return pageTitle
	case pageTitle == "":
		return r.site.Name
	}
	return fmt.Sprintf("%s - %s", pageTitle, r.site.Name)
}
