// Package respond provides helpers to write HTTP responses.
package respond

import (
	"encoding/json"
	"net/http"
)

// Status writes a response without body.
func Status(w http.ResponseWriter, code int) {
	w.WriteHeader(code)
}

// JSON writes data as JSON with the given status code. A nil value is written as null.
// Encoding errors are ignored, the status code has already been sent at that point.
func JSON(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(code)

	if data == nil {
		_, _ = w.Write([]byte("null"))
		return
	}

	_ = json.NewEncoder(w).Encode(data)
}

// SeeOther redirects the browser to url with a GET request, used after form posts.
func SeeOther(w http.ResponseWriter, r *http.Request, url string) {
	http.Redirect(w, r, url, http.StatusSeeOther)
}
