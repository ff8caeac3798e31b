package generator

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/ZacxDev/go-static-blog/config"
	"github.com/ZacxDev/go-static-blog/content"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const shell = `<html><head><title>{{TITLE}}</title>` +
	`<meta name="description" content="{{DESCRIPTION}}">` +
	`<link rel="canonical" href="{{CANONICAL_URL}}">` +
	`<meta property="og:type" content="{{OG_TYPE}}">` +
	`<meta property="og:image" content="{{OG_IMAGE}}">` +
	`</head><body>{{CONTENT}}{{SCRIPTS}}{{UNKNOWN}}</body></html>`

var dataCategories = regexp.MustCompile(`data-categories="([^"]*)"`)

func newTestGenerator(t *testing.T) *Generator {
	t.Helper()
	root := t.TempDir()
	site := config.Default()
	site.Origin = "https://harm0n.com"
	site.SiteName = "Harmon"
	site.PagesDir = filepath.Join(root, "pages")
	site.StaticDir = filepath.Join(root, "public")
	site.OutputDir = filepath.Join(root, "dist")
	site.DefaultImage = "/og-default.png"
	require.NoError(t, os.MkdirAll(site.StaticDir, 0o755))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewGenerator(site, shell, `<script src="/js/blog_x.js" defer></script>`, logger)
}

func readOutput(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func date(s string) time.Time {
	d, err := content.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestBlogIndex(t *testing.T) {
	g := newTestGenerator(t)
	posts := []content.Post{
		{Slug: "hi", Title: "Hi", Description: "First <post>", Date: date("2024-01-05"), Categories: []string{"ml"}, Published: true},
		{Slug: "elsewhere", Title: "Elsewhere", Date: date("2023-12-01"), Categories: []string{"ai", "ml"}, Published: true, Link: "https://example.org/post", External: true},
		{Slug: "secret", Title: "Secret", Date: date("2024-02-01"), Published: false},
	}

	path, err := g.BlogIndex(posts)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(g.Site.OutputDir, "blog", "index.html"), path)

	out := readOutput(t, path)
	assert.Contains(t, out, "<title>Blog - Harmon</title>")
	assert.Contains(t, out, `href="https://harm0n.com/blog"`)
	assert.Contains(t, out, `<a href="/blog/hi" class="hover:text-blue-600">Hi</a>`)
	assert.Contains(t, out, "January 5, 2024")
	assert.Contains(t, out, `data-categories="[&#34;ml&#34;]"`)
	assert.Contains(t, out, "First &lt;post&gt;")
	assert.Contains(t, out, `<a href="https://example.org/post" target="_blank" rel="noopener noreferrer"`)
	assert.Equal(t, 1, strings.Count(out, ">External</span>"))
	assert.Contains(t, out, `data-category="ai"`)
	assert.NotContains(t, out, "Secret")
	assert.NotContains(t, out, "/blog/secret")
	assert.Contains(t, out, `<script src="/js/blog_x.js" defer></script>`)
	assert.Contains(t, out, "{{UNKNOWN}}")

	assert.Less(t, strings.Index(out, "/blog/hi"), strings.Index(out, "https://example.org/post"))
	assert.Less(t, strings.Index(out, `data-category="ai"`), strings.Index(out, `data-category="ml"`))
}

func TestBlogIndex_CategoryWithComma(t *testing.T) {
	g := newTestGenerator(t)
	posts := []content.Post{
		{Slug: "hi", Title: "Hi", Date: date("2024-01-05"), Categories: []string{"ml, stats", "go"}, Published: true},
		{Slug: "plain", Title: "Plain", Date: date("2024-01-04"), Published: true},
	}

	path, err := g.BlogIndex(posts)
	require.NoError(t, err)

	var lists [][]string
	for _, m := range dataCategories.FindAllStringSubmatch(readOutput(t, path), -1) {
		var list []string
		require.NoError(t, json.Unmarshal([]byte(strings.ReplaceAll(m[1], "&#34;", `"`)), &list))
		lists = append(lists, list)
	}
	assert.Equal(t, [][]string{{"ml, stats", "go"}, {}}, lists)
}

func TestBlogIndex_NoPosts(t *testing.T) {
	g := newTestGenerator(t)

	path, err := g.BlogIndex(nil)
	require.NoError(t, err)

	out := readOutput(t, path)
	assert.Contains(t, out, `<div id="posts-container">`)
	assert.NotContains(t, out, "post-item")
	assert.Equal(t, 1, strings.Count(out, "data-category="))
	assert.Contains(t, out, `data-category="all"`)
}

func TestPost(t *testing.T) {
	g := newTestGenerator(t)
	post := content.Post{
		Slug:        "hi",
		Title:       "Hi",
		Description: "Hello world",
		Date:        date("2024-01-05"),
		Categories:  []string{"ml", "c++"},
		Published:   true,
		HTML:        `<h1 id="hello">Hello</h1>`,
	}

	path, err := g.Post(post)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(g.Site.OutputDir, "blog", "hi", "index.html"), path)

	out := readOutput(t, path)
	assert.Contains(t, out, "<title>Hi - Harmon</title>")
	assert.Contains(t, out, `<h1 id="hello">Hello</h1>`)
	assert.Contains(t, out, "January 5, 2024")
	assert.Contains(t, out, `href="/blog?category=ml"`)
	assert.Contains(t, out, `href="/blog?category=c%2B%2B"`)
	assert.Contains(t, out, `content="article"`)
	assert.Contains(t, out, `href="https://harm0n.com/blog/hi"`)
	assert.Contains(t, out, `content="https://harm0n.com/og-default.png"`)
}

func TestPost_SlugWithSpace(t *testing.T) {
	g := newTestGenerator(t)
	post := content.Post{Slug: "my post", Title: "Mine", Date: date("2024-01-05"), Published: true}

	path, err := g.Post(post)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(g.Site.OutputDir, "blog", "my post", "index.html"), path)
	assert.Contains(t, readOutput(t, path), `href="https://harm0n.com/blog/my%20post"`)

	index, err := g.BlogIndex([]content.Post{post})
	require.NoError(t, err)
	assert.Contains(t, readOutput(t, index), `<a href="/blog/my%20post" class="hover:text-blue-600">Mine</a>`)
}

func TestPost_Unpublished(t *testing.T) {
	g := newTestGenerator(t)
	_, err := g.Post(content.Post{Slug: "draft"})
	require.Error(t, err)
	_, statErr := os.Stat(filepath.Join(g.Site.OutputDir, "blog", "draft"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestSocialImage(t *testing.T) {
	g := newTestGenerator(t)
	require.NoError(t, os.MkdirAll(filepath.Join(g.Site.StaticDir, "img"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(g.Site.StaticDir, "img", "card.png"), []byte("png"), 0o644))

	assert.Equal(t, "https://harm0n.com/img/card.png", g.socialImage(content.Post{Image: "/img/card.png"}))
	assert.Equal(t, "https://harm0n.com/og-default.png", g.socialImage(content.Post{Image: "/img/missing.png"}))
	assert.Equal(t, "https://cdn.example.org/x.png", g.socialImage(content.Post{Image: "https://cdn.example.org/x.png"}))
	assert.Equal(t, "https://harm0n.com/og-default.png", g.socialImage(content.Post{}))
}

func TestStaticPages_Fallbacks(t *testing.T) {
	g := newTestGenerator(t)
	g.Site.Fallbacks.Home = "<p>fallback home</p>"
	g.Site.Fallbacks.About = "<p>fallback about</p>"
	g.Site.Fallbacks.NotFound = "<p>fallback 404</p>"

	written, err := g.StaticPages()
	require.NoError(t, err)
	require.Len(t, written, 3)

	assert.Contains(t, readOutput(t, filepath.Join(g.Site.OutputDir, "index.html")), "<p>fallback home</p>")
	about := readOutput(t, filepath.Join(g.Site.OutputDir, "about", "index.html"))
	assert.Contains(t, about, "<p>fallback about</p>")
	assert.Contains(t, about, "<title>About - Harmon</title>")
	assert.Contains(t, readOutput(t, filepath.Join(g.Site.OutputDir, "404.html")), "<p>fallback 404</p>")
}

func TestStaticPages_FromMarkdown(t *testing.T) {
	g := newTestGenerator(t)
	require.NoError(t, os.MkdirAll(g.Site.PagesDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(g.Site.PagesDir, "home.md"), []byte("Hi, I write about **ML**.\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(g.Site.PagesDir, "about.md"), []byte("---\ntitle: Who\ndescription: About the author\n---\n## Background\n"), 0o644))

	_, err := g.StaticPages()
	require.NoError(t, err)

	home := readOutput(t, filepath.Join(g.Site.OutputDir, "index.html"))
	assert.Contains(t, home, "<strong>ML</strong>")
	assert.Contains(t, home, "<title>Harmon</title>")

	about := readOutput(t, filepath.Join(g.Site.OutputDir, "about", "index.html"))
	assert.Contains(t, about, ">Background</h2>")
	assert.Contains(t, about, "<title>Who - Harmon</title>")
	assert.Contains(t, about, `content="About the author"`)
}
