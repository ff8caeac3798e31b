package handlers

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/ZacxDev/go-static-blog/utils"
	"github.com/gorilla/mux"
)

// Preview serves a built site from OutputDir. The sitemap is kept in memory
// and swapped after every successful build.
type Preview struct {
	OutputDir string

	mu      sync.RWMutex
	sitemap string
}

func NewPreview(outputDir string) *Preview {
	return &Preview{OutputDir: outputDir}
}

// Update replaces the served sitemap.
func (p *Preview) Update(urls []utils.Url) error {
	sitemap, err := utils.GenerateSitemapContent(urls)
	if err != nil {
		return err
	}
	p.mu.Lock()
	p.sitemap = sitemap
	p.mu.Unlock()
	return nil
}

func SetupRouter(p *Preview) *mux.Router {
	router := mux.NewRouter()

	router.NotFoundHandler = http.HandlerFunc(p.Custom404Handler)

	router.HandleFunc("/sitemap.xml", p.SitemapHandler).Methods("GET", "HEAD")
	router.PathPrefix("/").HandlerFunc(p.PageHandler).Methods("GET", "HEAD")

	return router
}

func (p *Preview) SitemapHandler(w http.ResponseWriter, r *http.Request) {
	p.mu.RLock()
	sitemap := p.sitemap
	p.mu.RUnlock()

	if sitemap == "" {
		p.Custom404Handler(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/xml")
	w.Write([]byte(sitemap))
}

// PageHandler maps /blog/slug to <output>/blog/slug/index.html and serves
// any other file under the output root as-is.
func (p *Preview) PageHandler(w http.ResponseWriter, r *http.Request) {
	clean := path.Clean("/" + r.URL.Path)
	file := filepath.Join(p.OutputDir, filepath.FromSlash(strings.TrimPrefix(clean, "/")))

	info, err := os.Stat(file)
	if err == nil && info.IsDir() {
		file = filepath.Join(file, "index.html")
		info, err = os.Stat(file)
	}
	if err != nil || info.IsDir() {
		p.Custom404Handler(w, r)
		return
	}

	http.ServeFile(w, r, file)
}
