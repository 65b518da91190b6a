package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/romashorodok/content-site/backend/internal/model"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static/*.js
var staticFS embed.FS

const STATIC_PREFIX = "/static/"

const (
	TEMPLATE_HOME      = "home.html"
	TEMPLATE_POSTS     = "posts.html"
	TEMPLATE_POST      = "post.html"
	TEMPLATE_FAQ       = "faq.html"
	TEMPLATE_DIRECTORY = "directory.html"
	TEMPLATE_ENTRY     = "entry.html"
	TEMPLATE_LEGAL     = "legal.html"
	TEMPLATE_NOT_FOUND = "notfound.html"
)

var pageTemplates = []string{
	TEMPLATE_HOME,
	TEMPLATE_POSTS,
	TEMPLATE_POST,
	TEMPLATE_FAQ,
	TEMPLATE_DIRECTORY,
	TEMPLATE_ENTRY,
	TEMPLATE_LEGAL,
	TEMPLATE_NOT_FOUND,
}

func postsHref(contentType model.ContentType) string {
	if contentType == model.CONTENT_TYPE_NEWSROOM {
		return "/newsroom"
	}
	return "/blog"
}

var templateFuncs = template.FuncMap{
	"inc":       func(i int) int { return i + 1 },
	"postsHref": postsHref,
	"postHref": func(post model.Post) string {
		return postsHref(post.Type) + "/" + post.Slug
	},
}

type templates map[string]*template.Template

func parseTemplates() (templates, error) {
	result := make(templates, len(pageTemplates))
	for _, name := range pageTemplates {
		tmpl, err := template.New(name).Funcs(templateFuncs).ParseFS(templatesFS, "templates/layout.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", name, err)
		}
		result[name] = tmpl
	}
	return result, nil
}

// render executes into a buffer first, a failed template must not leave half a page behind.
func (t templates) render(w http.ResponseWriter, status int, name string, data *pageData) error {
	tmpl, ok := t[name]
	if !ok {
		return fmt.Errorf("unknown template %s", name)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
