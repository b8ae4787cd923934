package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	errs "github.com/locallibrary/catalog-server/internal/errors"
)

//go:embed templates/*.html
var templateFS embed.FS

// templateFuncs are available to every page template.
var templateFuncs = template.FuncMap{
	// isodate renders a date as yyyy-mm-dd for <input type="date">
	// values. Zero and nil dates render as the empty string.
	"isodate": func(v any) string {
		switch t := v.(type) {
		case time.Time:
			if t.IsZero() {
				return ""
			}
			return t.Format("2006-01-02")
		case *time.Time:
			if t == nil || t.IsZero() {
				return ""
			}
			return t.Format("2006-01-02")
		default:
			return ""
		}
	},
}

// renderer caches one parsed template set per page, each paired with
// the shared layout.
type renderer struct {
	pages  map[string]*template.Template
	logger *slog.Logger
}

func newRenderer(logger *slog.Logger) (*renderer, error) {
	entries, err := fs.ReadDir(templateFS, "templates")
	if err != nil {
		return nil, fmt.Errorf("read templates: %w", err)
	}

	pages := make(map[string]*template.Template)
	for _, entry := range entries {
		name := entry.Name()
		if name == "layout.html" {
			continue
		}

		t, err := template.New("layout.html").
			Funcs(templateFuncs).
			ParseFS(templateFS, "templates/layout.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		pages[name] = t
	}

	return &renderer{pages: pages, logger: logger}, nil
}

// render executes a page template into a buffer first so a template
// error can still produce a clean 500 instead of a half-written page.
func (rn *renderer) render(w http.ResponseWriter, status int, page string, data any) {
	t, ok := rn.pages[page]
	if !ok {
		rn.logger.Error("unknown template", "page", page)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout.html", data); err != nil {
		rn.logger.Error("render template", "page", page, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

// errorPageData contains data for the error page template.
type errorPageData struct {
	Title   string
	Status  int
	Message string
}

// renderError renders the error page with the given status.
func (s *Server) renderError(w http.ResponseWriter, status int, message string) {
	s.renderer.render(w, status, "error.html", errorPageData{
		Title:   http.StatusText(status),
		Status:  status,
		Message: message,
	})
}

// serveError maps a service error onto an HTTP status and renders the
// error page.
func (s *Server) serveError(w http.ResponseWriter, r *http.Request, err error) {
	var appErr *errs.Error
	if errs.As(err, &appErr) {
		if appErr.Code == errs.CodeInternal {
			s.logger.Error("request failed", "path", r.URL.Path, "error", err)
		}
		s.renderError(w, appErr.HTTPStatus(), appErr.Message)
		return
	}

	s.logger.Error("request failed", "path", r.URL.Path, "error", err)
	s.renderError(w, http.StatusInternalServerError, "Something went wrong")
}
