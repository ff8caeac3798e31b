package handlers

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/ZacxDev/go-static-blog/generator"
)

// Custom404Handler answers with the generated 404 page, or a plain message
// when the site has not been built yet.
func (p *Preview) Custom404Handler(w http.ResponseWriter, r *http.Request) {
	body, err := os.ReadFile(filepath.Join(p.OutputDir, generator.NotFoundFile))
	if err != nil {
		http.Error(w, "404 page not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	w.Write(body)
}
