package generator

import (
	"path/filepath"

	"github.com/ZacxDev/go-static-blog/content"
	"github.com/ZacxDev/go-static-blog/layout"
	"github.com/gobuffalo/plush"
)

const AboutRoute = "about"

// NotFoundFile is the error page most static hosts serve for unknown paths.
const NotFoundFile = "404.html"

// standalone renders pages/<name>.md when it exists, otherwise fallback.
// The page's own title and description replace the given defaults.
func (g *Generator) standalone(name, fallback string, meta layout.Meta) (layout.Meta, error) {
	page, ok, err := content.ReadPage(filepath.Join(g.Site.PagesDir, name+".md"))
	if err != nil {
		return meta, err
	}
	if !ok {
		g.Logger.Debug("No page source, using fallback", "page", name)
		meta.Content = fallback
		return meta, nil
	}

	ctx := plush.NewContext()
	ctx.Set("body", html(page.HTML))
	meta.Content, err = renderFragment("page", ctx)
	if err != nil {
		return meta, err
	}
	if page.Meta.Title != "" {
		meta.Title = g.pageTitle(page.Meta.Title)
	}
	if page.Meta.Description != "" {
		meta.Description = page.Meta.Description
	}
	return meta, nil
}

// Home writes index.html.
func (g *Generator) Home() (string, error) {
	meta, err := g.standalone("home", g.Site.Fallbacks.Home, layout.Meta{
		Title:        g.Site.SiteName,
		Description:  g.Site.Description,
		CanonicalURL: g.Site.URL("/"),
		Type:         "website",
	})
	if err != nil {
		return "", err
	}
	return g.write("", meta)
}

// About writes about/index.html.
func (g *Generator) About() (string, error) {
	meta, err := g.standalone("about", g.Site.Fallbacks.About, layout.Meta{
		Title:        g.pageTitle("About"),
		Description:  g.Site.Description,
		CanonicalURL: g.Site.URL(AboutRoute),
		Type:         "website",
	})
	if err != nil {
		return "", err
	}
	return g.write(AboutRoute, meta)
}

// NotFound writes 404.html at the output root.
func (g *Generator) NotFound() (string, error) {
	meta, err := g.standalone("404", g.Site.Fallbacks.NotFound, layout.Meta{
		Title:       g.pageTitle("Page not found"),
		Description: g.Site.Description,
		Type:        "website",
	})
	if err != nil {
		return "", err
	}
	path := filepath.Join(g.Site.OutputDir, NotFoundFile)
	return path, g.writeFile(path, meta)
}

// StaticPages writes home, about and 404 in that order.
func (g *Generator) StaticPages() ([]string, error) {
	var written []string
	for _, generate := range []func() (string, error){g.Home, g.About, g.NotFound} {
		path, err := generate()
		if err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}
