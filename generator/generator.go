// Package generator builds every HTML document of the site: the blog index,
// one page per post, and the standalone home, about and 404 pages.
package generator

import (
	"embed"
	"html/template"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZacxDev/go-static-blog/config"
	"github.com/ZacxDev/go-static-blog/content"
	"github.com/ZacxDev/go-static-blog/layout"
	"github.com/ZacxDev/go-static-blog/utils"
	"github.com/gobuffalo/plush"
	"github.com/pkg/errors"
)

//go:embed fragments/*.plush.html
var fragments embed.FS

// Generator renders pages into Site.OutputDir using the shell Template.
type Generator struct {
	Site     config.SiteConfig
	Template string
	// Scripts is inserted into every page's SCRIPTS placeholder.
	Scripts string
	Logger  *slog.Logger
}

// NewGenerator returns a Generator writing to site.OutputDir.
func NewGenerator(site config.SiteConfig, tmpl, scripts string, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{Site: site, Template: tmpl, Scripts: scripts, Logger: logger}
}

func renderFragment(name string, ctx *plush.Context) (string, error) {
	source, err := fragments.ReadFile("fragments/" + name + ".plush.html")
	if err != nil {
		return "", errors.WithStack(err)
	}

	tmpl, err := plush.Parse(string(source))
	if err != nil {
		return "", errors.Wrapf(err, "error parsing fragment %s", name)
	}

	out, err := tmpl.Exec(ctx)
	if err != nil {
		return "", errors.Wrapf(err, "error executing fragment %s", name)
	}
	return out, nil
}

// write fills the shell with meta and stores it as route's index.html.
func (g *Generator) write(route string, meta layout.Meta) (string, error) {
	path := filepath.Join(g.Site.OutputDir, filepath.FromSlash(route), "index.html")
	return path, g.writeFile(path, meta)
}

func (g *Generator) writeFile(path string, meta layout.Meta) error {
	meta.SiteName = g.Site.SiteName
	meta.Scripts = g.Scripts
	if meta.Image == "" {
		meta.Image = g.absolute(g.Site.DefaultImage)
	}

	if err := utils.WriteFile(path, []byte(layout.Render(g.Template, meta))); err != nil {
		return err
	}
	g.Logger.Info("Generated page", "path", path)
	return nil
}

// pageTitle appends the site name, e.g. "Blog - Harmon Bhasin".
func (g *Generator) pageTitle(title string) string {
	if title == "" {
		return g.Site.SiteName
	}
	return title + " - " + g.Site.SiteName
}

func (g *Generator) absolute(ref string) string {
	if ref == "" || isAbsoluteURL(ref) {
		return ref
	}
	return g.Site.URL(ref)
}

// socialImage resolves a post's preview image. Local images missing from
// the static directory fall back to the site default.
func (g *Generator) socialImage(post content.Post) string {
	if post.Image == "" {
		return g.absolute(g.Site.DefaultImage)
	}
	if isAbsoluteURL(post.Image) {
		return post.Image
	}

	local := filepath.Join(g.Site.StaticDir, filepath.FromSlash(strings.TrimPrefix(post.Image, "/")))
	if _, err := os.Stat(local); err != nil {
		g.Logger.Warn("Social image not found, using default", "slug", post.Slug, "image", post.Image)
		return g.absolute(g.Site.DefaultImage)
	}
	return g.absolute(post.Image)
}

func isAbsoluteURL(ref string) bool {
	u, err := url.Parse(ref)
	return err == nil && u.Scheme != "" && u.Host != ""
}

// html marks generated markup as safe for plush output.
func html(s string) template.HTML {
	return template.HTML(s)
}
