package handlers

import (
	"net/http"

	"github.com/jarnr/preconceive/web"
)

// Landing serves the embedded static landing page.
func Landing(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(web.Index)
}
