package generator

import (
	"net/url"

	"github.com/ZacxDev/go-static-blog/content"
	"github.com/ZacxDev/go-static-blog/layout"
	"github.com/gobuffalo/plush"
	"github.com/pkg/errors"
)

type categoryLink struct {
	Name string
	Href string
}

// Post writes blog/<slug>/index.html.
func (g *Generator) Post(post content.Post) (string, error) {
	if !post.Published {
		return "", errors.Errorf("post %s is not published", post.Slug)
	}

	links := make([]categoryLink, 0, len(post.Categories))
	for _, category := range post.Categories {
		links = append(links, categoryLink{
			Name: category,
			Href: "/" + BlogRoute + "?category=" + url.QueryEscape(category),
		})
	}

	ctx := plush.NewContext()
	ctx.Set("title", post.Title)
	ctx.Set("date", post.DisplayDate())
	ctx.Set("isoDate", post.Date.Format("2006-01-02"))
	ctx.Set("categories", links)
	ctx.Set("body", html(post.HTML))

	body, err := renderFragment("post", ctx)
	if err != nil {
		return "", errors.Wrapf(err, "post %s", post.Slug)
	}

	return g.write(BlogRoute+"/"+post.Slug, layout.Meta{
		Title:        g.pageTitle(post.Title),
		Description:  post.Description,
		CanonicalURL: g.Site.URL(post.URLPath()),
		Type:         "article",
		Image:        g.socialImage(post),
		Content:      body,
	})
}
