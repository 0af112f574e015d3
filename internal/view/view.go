// Package view renders the HTML pages of the drinks service.
//
// Every page is an html/template file embedded in the binary and executed
// inside the shared layout. Renderer implements echo.Renderer, so handlers
// render with c.Render(status, "drinks/index", data).
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"strings"

	"github.com/deppfellow/drinks/internal/model"
	"github.com/labstack/echo/v4"
)

//go:embed templates
var files embed.FS

const (
	layoutTemplate = "layout"
	pageSuffix     = ".html"
)

// Renderer holds one parsed template set per page.
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer parses the embedded templates. funcs must provide the path
// helpers the templates call: drinksPath, drinkPath, newDrinkPath and
// editDrinkPath.
func NewRenderer(funcs template.FuncMap) (*Renderer, error) {
	base, err := template.New(layoutTemplate).
		Funcs(defaultFuncs()).
		Funcs(funcs).
		ParseFS(files, "templates/layout.html", "templates/partials/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse layout: %w", err)
	}

	r := &Renderer{pages: make(map[string]*template.Template)}

	err = fs.WalkDir(files, "templates", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, pageSuffix) {
			return nil
		}

		name := strings.TrimSuffix(strings.TrimPrefix(path, "templates/"), pageSuffix)
		if name == layoutTemplate || strings.HasPrefix(name, "partials/") {
			return nil
		}

		page, err := template.Must(base.Clone()).ParseFS(files, path)
		if err != nil {
			return fmt.Errorf("failed to parse page %s: %w", name, err)
		}
		r.pages[name] = page
		return nil
	})
	if err != nil {
		return nil, err
	}

	return r, nil
}

// Render implements echo.Renderer.
func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	page, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("view %q not found", name)
	}
	return page.ExecuteTemplate(w, layoutTemplate, data)
}

// Has reports whether a page called name exists.
func (r *Renderer) Has(name string) bool {
	_, ok := r.pages[name]
	return ok
}

func defaultFuncs() template.FuncMap {
	return template.FuncMap{
		"letters": func() []string {
			out := make([]string, 0, 26)
			for ch := 'a'; ch <= 'z'; ch++ {
				out = append(out, string(ch))
			}
			return out
		},
		"fieldError": func(errs *model.ValidationError, field string) string {
			return errs.Message(field)
		},
	}
}
