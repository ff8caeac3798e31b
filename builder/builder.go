// Package builder runs the full site build: clean output, load template and
// posts, bundle scripts, generate pages, copy assets, write the sitemap.
package builder

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ZacxDev/go-static-blog/config"
	"github.com/ZacxDev/go-static-blog/content"
	"github.com/ZacxDev/go-static-blog/generator"
	"github.com/ZacxDev/go-static-blog/javascript"
	"github.com/ZacxDev/go-static-blog/layout"
	"github.com/ZacxDev/go-static-blog/utils"
	"github.com/pkg/errors"
)

const SitemapFile = "sitemap.xml"

// Builder holds everything a build needs. Now stamps the sitemap; tests pin
// it for reproducible output.
type Builder struct {
	Site   config.SiteConfig
	Logger *slog.Logger
	Now    func() time.Time
}

// Result describes a finished build.
type Result struct {
	Posts      []content.Post
	Categories []string
	Pages      []string
	Assets     int
	Sitemap    []utils.Url
	BuiltAt    time.Time
}

func New(site config.SiteConfig, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{Site: site, Logger: logger, Now: time.Now}
}

// Run performs one complete build. The first failing step aborts the rest.
func (b *Builder) Run(ctx context.Context) (*Result, error) {
	site := b.Site
	now := b.Now()
	b.Logger.Info("Building site...", "output", site.OutputDir)

	if err := checkOutputDir(site); err != nil {
		return nil, err
	}
	if err := resetDir(site.OutputDir); err != nil {
		return nil, err
	}

	tmpl, err := layout.Load(site.Template)
	if err != nil {
		return nil, err
	}

	posts, err := content.LoadPosts(ctx, site.PostsDir)
	if err != nil {
		return nil, err
	}
	b.Logger.Info("Found published posts", "posts", len(posts))

	emitted, err := javascript.CompileJSTargets(site.Javascript, site.OutputDir)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Posts:      posts,
		Categories: content.Categories(posts),
		BuiltAt:    now,
	}

	gen := generator.NewGenerator(site, tmpl, javascript.ScriptTags(emitted), b.Logger)

	path, err := gen.BlogIndex(posts)
	if err != nil {
		return nil, err
	}
	result.Pages = append(result.Pages, path)

	for _, post := range posts {
		if err := ctx.Err(); err != nil {
			return nil, errors.WithStack(err)
		}
		path, err := gen.Post(post)
		if err != nil {
			return nil, err
		}
		result.Pages = append(result.Pages, path)
	}

	written, err := gen.StaticPages()
	if err != nil {
		return nil, err
	}
	result.Pages = append(result.Pages, written...)

	result.Assets, err = utils.CopyTree(site.StaticDir, site.OutputDir)
	if err != nil {
		return nil, err
	}
	b.Logger.Info("Copied static assets", "dir", site.StaticDir, "files", result.Assets)

	result.Sitemap = utils.SitemapEntries(site, posts, now)
	if err := utils.GenerateSitemaps(filepath.Join(site.OutputDir, SitemapFile), result.Sitemap); err != nil {
		return nil, errors.Wrap(err, "error generating sitemap")
	}

	b.Logger.Info("Build complete", "pages", len(result.Pages), "output", site.OutputDir)
	return result, nil
}

// sourceDirs lists every directory the build reads from.
func sourceDirs(site config.SiteConfig) []string {
	dirs := []string{site.PostsDir, site.PagesDir, site.StaticDir, filepath.Dir(site.Template)}
	for _, target := range site.Javascript {
		dirs = append(dirs, filepath.Dir(target.Source))
	}
	return dirs
}

// checkOutputDir refuses an output directory that is, or contains, a source
// directory, since the build empties it first.
func checkOutputDir(site config.SiteConfig) error {
	for _, dir := range sourceDirs(site) {
		if within(dir, site.OutputDir) {
			return errors.Errorf("output directory %s would delete source directory %s", site.OutputDir, dir)
		}
	}
	return nil
}

// within reports whether path is dir or lies below it.
func within(path, dir string) bool {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return false
	}
	return absPath == absDir || strings.HasPrefix(absPath, absDir+string(filepath.Separator))
}

// resetDir deletes dir and recreates it empty.
func resetDir(dir string) error {
	if dir == "" || filepath.Clean(dir) == "." || filepath.Clean(dir) == string(filepath.Separator) {
		return errors.Errorf("refusing to clean output directory %q", dir)
	}
	if err := os.RemoveAll(dir); err != nil {
		return errors.Wrapf(err, "error removing output directory %s", dir)
	}
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return errors.Wrapf(err, "error creating output directory %s", dir)
	}
	return nil
}
