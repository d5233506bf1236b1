package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/npodsekin/gocatalog/internal/catalog"
)

//go:embed templates/*.gohtml
var templatesFS embed.FS

// viewData is the payload handed to every page template.
type viewData struct {
	Title      string
	Flashes    []Flash
	Categories []catalog.Category

	// list view
	Products       []catalog.Product
	Search         string
	CategoryFilter string

	// add/edit/delete views
	Form   productForm
	EditID string
}

// renderer holds one parsed template per page, each combined with the shared
// layout.
type renderer struct {
	pages map[string]*template.Template
}

var pageNames = []string{"list", "add", "edit", "confirm_delete", "login"}

func newRenderer() (*renderer, error) {
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		tpl, err := template.ParseFS(templatesFS,
			"templates/layout.gohtml",
			"templates/"+name+".gohtml",
		)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s template: %w", name, err)
		}
		pages[name] = tpl
	}
	return &renderer{pages: pages}, nil
}

// render writes a page. The template is executed into a buffer first so a
// render failure produces a clean 500 instead of a half-written page.
func (re *renderer) render(w http.ResponseWriter, logger *slog.Logger, status int, page string, data viewData) {
	tpl, ok := re.pages[page]
	if !ok {
		logger.Error("Unknown page template", "page", page)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	var buf bytes.Buffer
	if err := tpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		logger.Error("Error rendering page", "page", page, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
