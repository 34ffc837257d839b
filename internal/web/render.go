package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strings"
	"time"

	"cat-collector/internal/platform/logger"
	"cat-collector/internal/ports/auth"
)

//go:embed templates
var templatesFS embed.FS

// Page es lo que recibe cada template.
type Page struct {
	Title string
	User  auth.Claims
	Data  map[string]any
}

func (p Page) LoggedIn() bool { return !p.User.Anonymous() }

// Renderer tiene un template por página, cada uno clonado del layout base.
type Renderer struct {
	pages map[string]*template.Template
	log   logger.Logger
}

var funcs = template.FuncMap{
	"url": URL,
	"date": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("2006-01-02")
	},
}

func NewRenderer(log logger.Logger) (*Renderer, error) {
	base, err := template.New("base.html").Funcs(funcs).ParseFS(templatesFS, "templates/base.html")
	if err != nil {
		return nil, fmt.Errorf("parse base template: %w", err)
	}

	pages := map[string]*template.Template{}
	err = fs.WalkDir(templatesFS, "templates", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || p == "templates/base.html" || path.Ext(p) != ".html" {
			return nil
		}
		t, err := template.Must(base.Clone()).ParseFS(templatesFS, p)
		if err != nil {
			return fmt.Errorf("parse %s: %w", p, err)
		}
		name := strings.TrimSuffix(strings.TrimPrefix(p, "templates/"), ".html")
		pages[name] = t
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &Renderer{pages: pages, log: log}, nil
}

// Render ejecuta la página en un buffer; si falla no se escribe HTML a medias.
func (rd *Renderer) Render(w http.ResponseWriter, status int, name string, page Page) {
	t, ok := rd.pages[name]
	if !ok {
		rd.log.Error("unknown template", logger.Fields{"template": name})
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "base", page); err != nil {
		rd.log.Error("render template", logger.Fields{"template": name, "err": err})
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (rd *Renderer) NotFound(w http.ResponseWriter, user auth.Claims) {
	rd.Render(w, http.StatusNotFound, "errors/404", Page{Title: "Not found", User: user})
}

func (rd *Renderer) ServerError(w http.ResponseWriter, user auth.Claims) {
	rd.Render(w, http.StatusInternalServerError, "errors/500", Page{Title: "Something went wrong", User: user})
}

// Redirect siempre usa 303 para que el navegador haga GET tras un POST.
func Redirect(w http.ResponseWriter, r *http.Request, target string) {
	http.Redirect(w, r, target, http.StatusSeeOther)
}
