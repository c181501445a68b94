package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"shoppy-store/internal/storefront"
	"shoppy-store/internal/web/view"

	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

var pageNames = []string{"index", "catalog", "product", "cart", "error"}

// Page is the data every template receives
type Page struct {
	Title       string
	State       storefront.Snapshot
	Overlay     view.CartView
	CurrentPath string
	Data        interface{}
}

type renderer struct {
	pages  map[string]*template.Template
	logger *zap.Logger
}

func newRenderer(logger *zap.Logger) (*renderer, error) {
	r := &renderer{
		pages:  make(map[string]*template.Template, len(pageNames)),
		logger: logger,
	}

	for _, name := range pageNames {
		t, err := template.New("layout.html").ParseFS(templateFS,
			"templates/layout.html",
			"templates/overlay.html",
			"templates/"+name+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		r.pages[name] = t
	}

	return r, nil
}

// render buffers the page so a template failure still yields a clean 500
func (r *renderer) render(w http.ResponseWriter, status int, name string, page Page) {
	t, ok := r.pages[name]
	if !ok {
		r.logger.Error("Unknown template", zap.String("template", name))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", page); err != nil {
		r.logger.Error("Failed to render page", zap.String("template", name), zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

func staticHandler() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}
