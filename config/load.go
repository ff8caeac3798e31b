package config

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

const DefaultFile = "site.yaml"

const (
	defaultHomeFragment = `
    <div class="max-w-3xl mx-auto px-4 py-8">
      <div class="prose prose-lg max-w-none">
        <p>Welcome to my site.</p>
      </div>
    </div>
  `
	defaultAboutFragment = `
    <div class="max-w-3xl mx-auto px-4 py-8">
      <h1 class="text-4xl font-bold mb-8">About</h1>
      <div class="prose prose-lg">
        <p>Information about the author.</p>
      </div>
    </div>
  `
	defaultNotFoundFragment = `
    <div class="max-w-3xl mx-auto px-4 py-8">
      <h1 class="text-4xl font-bold mb-8">Page not found</h1>
      <p><a href="/">Back to the home page</a></p>
    </div>
  `
)

// Default returns the configuration used when no site.yaml exists.
func Default() SiteConfig {
	return SiteConfig{
		Origin:       "https://harm0n.com",
		SiteName:     "Harmon Bhasin",
		Description:  "Notes and writing.",
		DefaultImage: "/og-image.png",
		PostsDir:     "posts",
		PagesDir:     "pages",
		Template:     "templates/base.html",
		StaticDir:    "public",
		OutputDir:    "dist",
		Fallbacks: Fallbacks{
			Home:     defaultHomeFragment,
			About:    defaultAboutFragment,
			NotFound: defaultNotFoundFragment,
		},
	}
}

// Load reads the site configuration from path. When required is false a
// missing file yields the defaults. APP_ORIGIN overrides the origin.
func Load(path string, required bool) (SiteConfig, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return SiteConfig{}, errors.Wrapf(err, "error parsing %s", path)
		}
	case os.IsNotExist(err) && !required:
	default:
		return SiteConfig{}, errors.Wrapf(err, "error loading %s", path)
	}

	if origin := os.Getenv("APP_ORIGIN"); origin != "" {
		cfg.Origin = origin
	}
	cfg.Origin = strings.TrimRight(cfg.Origin, "/")

	cfg.fillDefaults()
	return cfg, nil
}

// fillDefaults restores defaults for keys a config file set to empty values.
func (c *SiteConfig) fillDefaults() {
	d := Default()
	if c.PostsDir == "" {
		c.PostsDir = d.PostsDir
	}
	if c.PagesDir == "" {
		c.PagesDir = d.PagesDir
	}
	if c.Template == "" {
		c.Template = d.Template
	}
	if c.StaticDir == "" {
		c.StaticDir = d.StaticDir
	}
	if c.OutputDir == "" {
		c.OutputDir = d.OutputDir
	}
	if c.Fallbacks.Home == "" {
		c.Fallbacks.Home = d.Fallbacks.Home
	}
	if c.Fallbacks.About == "" {
		c.Fallbacks.About = d.Fallbacks.About
	}
	if c.Fallbacks.NotFound == "" {
		c.Fallbacks.NotFound = d.Fallbacks.NotFound
	}
}

// URL joins route onto the site origin.
func (c SiteConfig) URL(route string) string {
	if route == "" || route == "/" {
		return c.Origin
	}
	return c.Origin + "/" + strings.TrimLeft(route, "/")
}
