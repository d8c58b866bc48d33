package respond

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
)

// TplData is a convenience type for passing data to templates.
type TplData map[string]any

// TemplateInstance is implemented by the html/template and text/template packages.
type TemplateInstance interface {
	ExecuteTemplate(wr io.Writer, name string, data any) error
}

// TemplateRenderer renders named templates into HTTP responses.
type TemplateRenderer struct {
	t TemplateInstance
}

func NewTemplateRenderer(t TemplateInstance) *TemplateRenderer {
	return &TemplateRenderer{t: t}
}

// HTML renders the named template as a text/html page.
// The page is rendered into a buffer first, so a failing template never produces a half written page.
// Rendering errors panic and are handled by the recovery middleware.
func (r *TemplateRenderer) HTML(w http.ResponseWriter, code int, name string, data any) {
	buf := &bytes.Buffer{}
	if err := r.t.ExecuteTemplate(buf, name, data); err != nil {
		panic(fmt.Errorf("error rendering template %s: %w", name, err))
	}

	w.Header().Set("Content-Type", "text/html;charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(code)
	_, _ = buf.WriteTo(w)
}
