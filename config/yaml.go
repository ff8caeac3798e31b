package config

// config/yaml.go

type JavascriptTarget struct {
	Source string `yaml:"source"`
	OutDir string `yaml:"out_dir"`
}

// Fallbacks holds the HTML fragments used when an optional page source is
// missing.
type Fallbacks struct {
	Home     string `yaml:"home"`
	About    string `yaml:"about"`
	NotFound string `yaml:"not_found"`
}

type SiteConfig struct {
	Origin       string                      `yaml:"origin"`
	SiteName     string                      `yaml:"site_name"`
	Description  string                      `yaml:"description"`
	DefaultImage string                      `yaml:"default_image"`
	PostsDir     string                      `yaml:"posts_dir"`
	PagesDir     string                      `yaml:"pages_dir"`
	Template     string                      `yaml:"template"`
	StaticDir    string                      `yaml:"static_dir"`
	OutputDir    string                      `yaml:"output_dir"`
	Javascript   map[string]JavascriptTarget `yaml:"javascript"`
	Fallbacks    Fallbacks                   `yaml:"fallbacks"`
}
