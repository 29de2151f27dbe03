package handler

import (
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"time"
)

// Renderer holds the parsed page templates.
type Renderer struct {
	templates *template.Template
}

func NewRenderer(assets fs.FS) (*Renderer, error) {
	funcs := template.FuncMap{
		"kb":   formatKB,
		"date": formatDate,
	}

	parsed, err := template.New("").Funcs(funcs).ParseFS(assets, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	return &Renderer{templates: parsed}, nil
}

func (rd *Renderer) render(w http.ResponseWriter, status int, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := rd.templates.ExecuteTemplate(w, name, data); err != nil {
		slog.Error("template render failed", "template", name, "error", err)
	}
}

func formatKB(size int64) string {
	return fmt.Sprintf("%.1f KB", float64(size)/1024)
}

// formatDate renders the backend's mod_time string as a short date; values
// that fail to parse are shown as-is.
func formatDate(raw string) string {
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return raw
	}

	return t.Format("2006-01-02")
}
