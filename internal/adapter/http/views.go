package adapthttp

import (
	"embed"
	"html/template"
	"log"
	"net/http"

	"taskhub/internal/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

// viewData is the model handed to every page template.
type viewData struct {
	LoggedInUser string
	Tasks        []domain.Task
	Task         *domain.Task
	SSOEnabled   bool
}

type views struct {
	tmpl *template.Template
}

func newViews() (*views, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &views{tmpl: tmpl}, nil
}

func (v *views) render(w http.ResponseWriter, status int, name string, data viewData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := v.tmpl.ExecuteTemplate(w, name, data); err != nil {
		// Headers are already out; all we can do is log.
		log.Printf("render %s: %v", name, err)
	}
}
