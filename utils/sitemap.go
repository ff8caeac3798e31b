package utils

import (
	"encoding/xml"
	"time"

	"github.com/ZacxDev/go-static-blog/config"
	"github.com/ZacxDev/go-static-blog/content"
	"github.com/pkg/errors"
)

const sitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

type Sitemap struct {
	XMLName xml.Name `xml:"urlset"`
	Xmlns   string   `xml:"xmlns,attr"`
	Urls    []Url    `xml:"url"`
}

type Url struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

// SitemapRoute is a fixed page that always appears in the sitemap.
type SitemapRoute struct {
	Path       string
	ChangeFreq string
	Priority   string
}

// Priorities per route tier: root, section pages, posts.
const (
	RootPriority = "1.0"
	PostPriority = "0.7"
)

var StaticRoutes = []SitemapRoute{
	{Path: "about", ChangeFreq: "monthly", Priority: "0.8"},
	{Path: content.BlogRoute, ChangeFreq: "weekly", Priority: "0.9"},
}

// SitemapEntries lists the root, every static route and every post. Static
// pages carry the build date, posts their own date.
func SitemapEntries(site config.SiteConfig, posts []content.Post, now time.Time) []Url {
	built := now.UTC().Format("2006-01-02")

	urls := []Url{{
		Loc:        site.URL("/"),
		LastMod:    built,
		ChangeFreq: "monthly",
		Priority:   RootPriority,
	}}
	for _, route := range StaticRoutes {
		urls = append(urls, Url{
			Loc:        site.URL(route.Path),
			LastMod:    built,
			ChangeFreq: route.ChangeFreq,
			Priority:   route.Priority,
		})
	}
	for _, post := range posts {
		if !post.Published {
			continue
		}
		urls = append(urls, Url{
			Loc:        site.URL(post.URLPath()),
			LastMod:    post.Date.UTC().Format("2006-01-02"),
			ChangeFreq: "monthly",
			Priority:   PostPriority,
		})
	}
	return urls
}

func GenerateSitemaps(path string, urls []Url) error {
	xmlOutput, err := GenerateSitemapContent(urls)
	if err != nil {
		return err
	}
	return WriteFile(path, []byte(xmlOutput))
}

// GenerateSitemapContent renders urls as a complete sitemap document,
// including the XML declaration.
func GenerateSitemapContent(urls []Url) (string, error) {
	sitemap := Sitemap{
		Xmlns: sitemapNamespace,
		Urls:  urls,
	}

	xmlOutput, err := xml.MarshalIndent(sitemap, "", "  ")
	if err != nil {
		return "", errors.WithStack(err)
	}

	return xml.Header + string(xmlOutput) + "\n", nil
}
