package adaptor

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

var templateFuncs = template.FuncMap{
	"eq_str": func(a, b any) bool { return fmt.Sprint(a) == fmt.Sprint(b) },
}

// Renderer executes the page templates into a buffer first, so a template
// error never leaves a half written page.
type Renderer struct {
	tmpl *template.Template
	log  *zap.Logger
}

func NewRenderer(log *zap.Logger) (*Renderer, error) {
	tmpl, err := template.New("pages").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{
		tmpl: tmpl,
		log:  log.With(zap.String("component", "renderer")),
	}, nil
}

func (r *Renderer) HTML(w http.ResponseWriter, status int, name string, data any) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		r.log.Error("Failed to render template", zap.String("template", name), zap.Error(err))
		http.Error(w, "Error interno del servidor", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

type errorView struct {
	Status  int
	Message string
}

// ErrorPage renders a stand-alone error page.
func (r *Renderer) ErrorPage(w http.ResponseWriter, status int, message string) {
	r.HTML(w, status, "error", errorView{Status: status, Message: message})
}
