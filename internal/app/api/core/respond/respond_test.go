package respond

import (
	"html/template"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJSON(t *testing.T) {
	rr := httptest.NewRecorder()
	JSON(rr, http.StatusConflict, map[string]any{"Code": 409, "Message": "invalid transition"})

	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"Code":409,"Message":"invalid transition"}`, rr.Body.String())

	rr = httptest.NewRecorder()
	JSON(rr, http.StatusOK, nil)
	assert.Equal(t, "null", rr.Body.String())
}

func TestSeeOther(t *testing.T) {
	rr := httptest.NewRecorder()
	SeeOther(rr, httptest.NewRequest(http.MethodPost, "/login", nil), "/dashboard")

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/dashboard", rr.Header().Get("Location"))
}

func TestTemplateRenderer_HTML(t *testing.T) {
	tpl := template.Must(template.New("page").Parse(`<h1>{{.Title}}</h1>`))
	r := NewTemplateRenderer(tpl)

	rr := httptest.NewRecorder()
	r.HTML(rr, http.StatusNotFound, "page", TplData{"Title": "<Not Found>"})

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "text/html;charset=utf-8", rr.Header().Get("Content-Type"))
	assert.Equal(t, "<h1>&lt;Not Found&gt;</h1>", rr.Body.String())
}

func TestTemplateRenderer_Error(t *testing.T) {
	r := NewTemplateRenderer(template.Must(template.New("page").Parse(`{{.Missing.Field}}`)))

	rr := httptest.NewRecorder()
	assert.Panics(t, func() {
		r.HTML(rr, http.StatusOK, "unknown", nil)
	})
	assert.Empty(t, rr.Body.String())
}
